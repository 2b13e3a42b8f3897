package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hongminglow/stockroom/internal/storage"
)

var _ storage.TokenStore = (*Store)(nil)

// Store keeps client state as a small JSON document on disk, keyed by name.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by the file at path. The file is created on
// first Set.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is $HOME/.stockroom/state.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".stockroom", "state.json"), nil
}

// Path reports the backing file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return "", err
	}
	token := state[storage.TokenKey]
	if token == "" {
		return "", storage.ErrNotFound
	}
	return token, nil
}

func (s *Store) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return err
	}
	state[storage.TokenKey] = token
	return s.write(state)
}

func (s *Store) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := state[storage.TokenKey]; !ok {
		return nil
	}
	delete(state, storage.TokenKey)
	return s.write(state)
}

func (s *Store) read() (map[string]string, error) {
	state := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(b) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return state, nil
}

func (s *Store) write(state map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
