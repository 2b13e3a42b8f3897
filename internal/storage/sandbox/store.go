// Package sandbox is the in-memory data behind the sandbox API.
package sandbox

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/hongminglow/stockroom/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Table is an id-keyed collection with its own sequence.
type Table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int64]T)}
}

// Insert allocates the next id and stores what build returns for it.
func (t *Table[T]) Insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	row := build(t.nextID)
	t.rows[t.nextID] = row
	return row
}

func (t *Table[T]) Get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return row, nil
}

// Replace swaps row id for what fn returns.
func (t *Table[T]) Replace(id int64, fn func(T) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	row = fn(row)
	t.rows[id] = row
	return row, nil
}

func (t *Table[T]) Delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// List returns rows accepted by keep (all when nil) in id order.
func (t *Table[T]) List(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Store holds every sandbox collection plus credentials and revoked tokens.
type Store struct {
	Users      *Table[models.User]
	Profiles   *Table[models.Profile]
	Categories *Table[models.Category]
	Suppliers  *Table[models.Supplier]
	Items      *Table[models.Item]

	mu        sync.Mutex
	passwords map[int64]string
	revoked   map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		Users:      NewTable[models.User](),
		Profiles:   NewTable[models.Profile](),
		Categories: NewTable[models.Category](),
		Suppliers:  NewTable[models.Supplier](),
		Items:      NewTable[models.Item](),
		passwords:  make(map[int64]string),
		revoked:    make(map[string]struct{}),
	}
}

// CreateAccount inserts a user with a unique email and its password hash,
// plus a default profile.
func (s *Store) CreateAccount(user models.User, passwordHash, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if len(s.Users.List(func(u models.User) bool { return strings.EqualFold(u.Email, email) })) > 0 {
		return models.User{}, ErrAlreadyExists
	}
	created := s.Users.Insert(func(id int64) models.User {
		user.ID = id
		user.Email = email
		if user.Username == "" {
			user.Username = email
		}
		return user
	})
	s.passwords[created.ID] = passwordHash
	s.Profiles.Insert(func(id int64) models.Profile {
		return models.Profile{ID: id, User: created.ID, Role: role}
	})
	return created, nil
}

// FindByEmail returns the user and password hash for email.
func (s *Store) FindByEmail(email string) (models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := s.Users.List(func(u models.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
	if len(matches) == 0 {
		return models.User{}, "", ErrNotFound
	}
	return matches[0], s.passwords[matches[0].ID], nil
}

// DeleteAccount removes the user, its credentials and its profiles.
func (s *Store) DeleteAccount(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Users.Delete(id); err != nil {
		return err
	}
	delete(s.passwords, id)
	for _, p := range s.Profiles.List(func(p models.Profile) bool { return p.User == id }) {
		_ = s.Profiles.Delete(p.ID)
	}
	return nil
}

// Revoke marks a token id as logged out.
func (s *Store) Revoke(tokenID string) {
	s.mu.Lock()
	s.revoked[tokenID] = struct{}{}
	s.mu.Unlock()
}

func (s *Store) IsRevoked(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok
}
