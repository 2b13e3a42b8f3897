package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/stockroom/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.TokenStore interface at compile time.
var _ storage.TokenStore = (*Store)(nil)

// Store keeps client state in a Postgres key/value table so several hosts can
// share one login.
type Store struct {
	pool *pgxpool.Pool
	key  string
}

// NewTokenStore connects, runs migrations and returns a store keyed by
// storage.TokenKey.
func NewTokenStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, key: storage.TokenKey}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS client_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Get returns the stored token or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context) (string, error) {
	const query = `SELECT value FROM client_state WHERE key = $1;`
	var token string
	if err := s.pool.QueryRow(ctx, query, s.key).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	if token == "" {
		return "", storage.ErrNotFound
	}
	return token, nil
}

// Set upserts the token row.
func (s *Store) Set(ctx context.Context, token string) error {
	const query = `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := s.pool.Exec(ctx, query, s.key, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Remove deletes the token row if present.
func (s *Store) Remove(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1;`, s.key); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
