// Package session tracks who is signed in. A Session starts in the loading
// state and resolves to authenticated or unauthenticated after Init.
package session

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage"
)

// AuthService is the subset of the auth API the session drives.
type AuthService interface {
	Login(ctx context.Context, creds dto.LoginRequest) (dto.AuthResponse, error)
	Register(ctx context.Context, data dto.RegisterRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, data dto.ProfileUpdate) (models.User, error)
}

// State is a snapshot of the session. User is nil unless Authenticated.
type State struct {
	User          *models.User
	Authenticated bool
	Loading       bool
}

// Session owns the current user. Subscribers are called after every change
// with the new snapshot, outside the lock.
type Session struct {
	auth   AuthService
	tokens storage.TokenStore
	logger *log.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func New(auth AuthService, tokens storage.TokenStore, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(os.Stderr, "[stockroom] ", log.LstdFlags)
	}
	return &Session{
		auth:   auth,
		tokens: tokens,
		logger: logger,
		state:  State{Loading: true},
		subs:   make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for state changes and returns a func that removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Reset returns the session to its initial loading state and drops all
// subscribers. The token store is left alone.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = State{Loading: true}
	s.subs = make(map[int]func(State))
	s.mu.Unlock()
}

// Init resolves the loading state from the stored token. A token the server
// rejects is removed.
func (s *Session) Init(ctx context.Context) {
	if _, err := s.tokens.Get(ctx); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("session: read token: %v", err)
		}
		s.set(State{})
		return
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		s.logger.Printf("session: failed to get user profile: %v", err)
		s.discardToken(ctx)
		s.set(State{})
		return
	}
	s.set(State{User: &user, Authenticated: true})
}

// Login authenticates then loads the profile. The session only becomes
// authenticated if both calls succeed; a profile failure signs out.
func (s *Session) Login(ctx context.Context, creds dto.LoginRequest) (dto.AuthResponse, error) {
	return s.signIn(ctx, func() (dto.AuthResponse, error) {
		return s.auth.Login(ctx, creds)
	})
}

// Register creates the account then loads the profile, like Login.
func (s *Session) Register(ctx context.Context, data dto.RegisterRequest) (dto.AuthResponse, error) {
	return s.signIn(ctx, func() (dto.AuthResponse, error) {
		return s.auth.Register(ctx, data)
	})
}

func (s *Session) signIn(ctx context.Context, authenticate func() (dto.AuthResponse, error)) (dto.AuthResponse, error) {
	s.mutate(func(st *State) { st.Loading = true })

	resp, err := authenticate()
	if err != nil {
		s.mutate(func(st *State) { st.Loading = false })
		return resp, err
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		// The new token already replaced any previous one, so the prior
		// user cannot be kept either.
		s.discardToken(ctx)
		s.set(State{})
		return resp, err
	}

	s.set(State{User: &user, Authenticated: true})
	return resp, nil
}

// Logout is best effort on the server; local state is always cleared.
func (s *Session) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Printf("session: logout error: %v", err)
	}
	s.set(State{})
}

// UpdateProfile saves the profile and replaces the current user with the
// server's copy.
func (s *Session) UpdateProfile(ctx context.Context, data dto.ProfileUpdate) (models.User, error) {
	user, err := s.auth.UpdateProfile(ctx, data)
	if err != nil {
		return models.User{}, err
	}
	s.mutate(func(st *State) {
		u := user
		st.User = &u
	})
	return user, nil
}

func (s *Session) discardToken(ctx context.Context) {
	if err := s.tokens.Remove(context.WithoutCancel(ctx)); err != nil {
		s.logger.Printf("session: remove token: %v", err)
	}
}

func (s *Session) set(next State) {
	s.mutate(func(st *State) { *st = next })
}

func (s *Session) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Session) snapshotLocked() State {
	snap := s.state
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}
