package storage

import (
	"context"
	"errors"
)

// TokenKey is the fixed name the auth token is persisted under.
const TokenKey = "authToken"

// ErrNotFound indicates no token is stored.
var ErrNotFound = errors.New("token not found")

// TokenStore persists the opaque auth token between runs. A stored token is
// trusted until the server rejects it.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}
