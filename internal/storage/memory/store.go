package memory

import (
	"context"
	"sync"

	"github.com/hongminglow/stockroom/internal/storage"
)

var _ storage.TokenStore = (*Store)(nil)

// Store keeps the token in process memory only.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore returns a store, optionally seeded with a token.
func NewStore(token string) *Store {
	return &Store{token: token}
}

func (s *Store) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", storage.ErrNotFound
	}
	return s.token, nil
}

func (s *Store) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Store) Remove(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
