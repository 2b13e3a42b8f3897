package session

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/stockroom/internal/api"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage"
	"github.com/hongminglow/stockroom/internal/storage/memory"
)

// fakeAuth mimics the auth API: login/register store the token, logout
// removes it.
type fakeAuth struct {
	tokens storage.TokenStore

	loginErr   error
	profileErr error
	logoutErr  error
	updateErr  error

	user        models.User
	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, _ dto.LoginRequest) (dto.AuthResponse, error) {
	if f.loginErr != nil {
		return dto.AuthResponse{}, f.loginErr
	}
	_ = f.tokens.Set(ctx, "issued")
	return dto.AuthResponse{Token: "issued"}, nil
}

func (f *fakeAuth) Register(ctx context.Context, data dto.RegisterRequest) (dto.AuthResponse, error) {
	f.user = models.User{ID: 9, Email: data.Email, FirstName: data.FirstName}
	return f.Login(ctx, dto.LoginRequest{})
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	_ = f.tokens.Remove(ctx)
	return f.logoutErr
}

func (f *fakeAuth) Profile(context.Context) (models.User, error) {
	if f.profileErr != nil {
		return models.User{}, f.profileErr
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, data dto.ProfileUpdate) (models.User, error) {
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	f.user.FirstName, f.user.LastName, f.user.Email = data.FirstName, data.LastName, data.Email
	return f.user, nil
}

func newSession(token string) (*Session, *fakeAuth, *memory.Store) {
	tokens := memory.NewStore(token)
	auth := &fakeAuth{tokens: tokens, user: models.User{ID: 1, Email: "ada@example.com"}}
	return New(auth, tokens, log.New(io.Discard, "", 0)), auth, tokens
}

func TestNewStartsLoading(t *testing.T) {
	s, _, _ := newSession("")
	assert.Equal(t, State{Loading: true}, s.State())
}

func TestInitWithoutToken(t *testing.T) {
	s, _, _ := newSession("")
	s.Init(context.Background())
	assert.Equal(t, State{}, s.State())
}

func TestInitWithValidToken(t *testing.T) {
	s, _, _ := newSession("stored")
	s.Init(context.Background())

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	require.NotNil(t, st.User)
	assert.Equal(t, "ada@example.com", st.User.Email)
}

func TestInitRejectedTokenIsCleared(t *testing.T) {
	s, auth, tokens := newSession("stale")
	auth.profileErr = &api.HTTPError{Status: 401, Message: "Invalid token."}

	s.Init(context.Background())

	assert.Equal(t, State{}, s.State())
	_, err := tokens.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoginSuccess(t *testing.T) {
	s, _, _ := newSession("")
	s.Init(context.Background())

	var seen []State
	cancel := s.Subscribe(func(st State) { seen = append(seen, st) })
	defer cancel()

	resp, err := s.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "issued", resp.Token)

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.True(t, seen[1].Authenticated)
}

func TestLoginProfileFailureIsAllOrNothing(t *testing.T) {
	s, auth, tokens := newSession("")
	s.Init(context.Background())
	auth.profileErr = errors.New("profile down")

	_, err := s.Login(context.Background(), dto.LoginRequest{})
	require.EqualError(t, err, "profile down")

	assert.Equal(t, State{}, s.State())
	_, err = tokens.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReloginProfileFailureSignsOut(t *testing.T) {
	s, auth, tokens := newSession("old")
	s.Init(context.Background())
	require.True(t, s.State().Authenticated)
	auth.profileErr = errors.New("profile down")

	_, err := s.Login(context.Background(), dto.LoginRequest{})
	require.EqualError(t, err, "profile down")

	assert.Equal(t, State{}, s.State())
	_, err = tokens.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoginFailureKeepsPriorState(t *testing.T) {
	s, auth, _ := newSession("stored")
	s.Init(context.Background())
	auth.loginErr = &api.HTTPError{Status: 400, Message: "Invalid credentials"}

	_, err := s.Login(context.Background(), dto.LoginRequest{})
	require.EqualError(t, err, "Invalid credentials")

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
}

func TestRegister(t *testing.T) {
	s, _, _ := newSession("")
	s.Init(context.Background())

	_, err := s.Register(context.Background(), dto.RegisterRequest{Email: "new@example.com", FirstName: "New", Password: "longenough"})
	require.NoError(t, err)
	st := s.State()
	require.True(t, st.Authenticated)
	assert.Equal(t, "new@example.com", st.User.Email)
}

func TestLogoutSwallowsServerError(t *testing.T) {
	s, auth, _ := newSession("stored")
	s.Init(context.Background())
	auth.logoutErr = errors.New("boom")

	s.Logout(context.Background())

	assert.Equal(t, 1, auth.logoutCalls)
	assert.Equal(t, State{}, s.State())
}

func TestUpdateProfile(t *testing.T) {
	s, auth, _ := newSession("stored")
	s.Init(context.Background())

	user, err := s.UpdateProfile(context.Background(), dto.ProfileUpdate{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Ada Lovelace", s.State().User.DisplayName())

	auth.updateErr = errors.New("conflict")
	_, err = s.UpdateProfile(context.Background(), dto.ProfileUpdate{FirstName: "Other"})
	require.Error(t, err)
	assert.Equal(t, "Ada", s.State().User.FirstName)
}

func TestStateIsACopy(t *testing.T) {
	s, _, _ := newSession("stored")
	s.Init(context.Background())

	st := s.State()
	st.User.Email = "mutated"
	assert.Equal(t, "ada@example.com", s.State().User.Email)
}

func TestResetAndUnsubscribe(t *testing.T) {
	s, _, _ := newSession("stored")
	calls := 0
	cancel := s.Subscribe(func(State) { calls++ })
	s.Init(context.Background())
	assert.Equal(t, 1, calls)

	cancel()
	s.Logout(context.Background())
	assert.Equal(t, 1, calls)

	s.Subscribe(func(State) { calls++ })
	s.Reset()
	assert.Equal(t, State{Loading: true}, s.State())
	s.Init(context.Background())
	assert.Equal(t, 1, calls)
}
