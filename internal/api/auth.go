package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
)

// AuthAPI wraps the /auth/ endpoints and keeps the token store in step with
// login, register and logout.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login authenticates and persists the returned token.
func (a *AuthAPI) Login(ctx context.Context, creds dto.LoginRequest) (dto.AuthResponse, error) {
	return a.authenticate(ctx, "/auth/login/", creds)
}

// Register creates an account and persists the returned token.
func (a *AuthAPI) Register(ctx context.Context, data dto.RegisterRequest) (dto.AuthResponse, error) {
	return a.authenticate(ctx, "/auth/register/", data)
}

func (a *AuthAPI) authenticate(ctx context.Context, path string, body any) (dto.AuthResponse, error) {
	resp, err := call[dto.AuthResponse](ctx, a.client, path, RequestOptions{
		Method:   http.MethodPost,
		Body:     body,
		SkipAuth: true,
	})
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if resp.Token != "" && a.client.tokens != nil {
		if err := a.client.tokens.Set(ctx, resp.Token); err != nil {
			return resp, fmt.Errorf("persist token: %w", err)
		}
	}
	return resp, nil
}

// Logout tells the server to drop the token, then removes it locally even if
// the server call failed.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := a.client.Do(ctx, "/auth/logout/", RequestOptions{Method: http.MethodPost})
	if a.client.tokens != nil {
		if rerr := a.client.tokens.Remove(context.WithoutCancel(ctx)); rerr != nil && err == nil {
			err = fmt.Errorf("remove token: %w", rerr)
		}
	}
	return err
}

func (a *AuthAPI) Profile(ctx context.Context) (models.User, error) {
	return call[models.User](ctx, a.client, "/auth/profile/", RequestOptions{})
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, data dto.ProfileUpdate) (models.User, error) {
	return call[models.User](ctx, a.client, "/auth/profile/", RequestOptions{Method: http.MethodPut, Body: data})
}
