package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage"
)

type recorded struct {
	method string
	uri    string
	auth   string
}

func recordingClient(t *testing.T, token string, reply func(w http.ResponseWriter, r *http.Request)) (*Services, *[]recorded, storage.TokenStore) {
	t.Helper()
	var calls []recorded
	c, tokens := newTestClient(t, token, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, recorded{method: r.Method, uri: r.URL.RequestURI(), auth: r.Header.Get("Authorization")})
		reply(w, r)
	})
	return NewServices(c), &calls, tokens
}

func TestResourcePaths(t *testing.T) {
	svc, calls, _ := recordingClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"x","results":[],"count":0}`))
	})
	ctx := context.Background()
	inv := svc.Inventory

	_, err := inv.Items.GetAll(ctx, Params{"category": "", "search": "foo"})
	require.NoError(t, err)
	_, err = inv.Items.GetByID(ctx, 7)
	require.NoError(t, err)
	_, err = inv.Categories.Create(ctx, dto.CategoryInput{Name: "Tools"})
	require.NoError(t, err)
	_, err = inv.Suppliers.Update(ctx, 3, dto.SupplierInput{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, inv.Items.Delete(ctx, 9))
	_, err = inv.Items.LowStock(ctx)
	require.NoError(t, err)
	_, err = inv.Items.ByCategory(ctx, 4)
	require.NoError(t, err)
	_, err = inv.Items.Search(ctx, "red & blue")
	require.NoError(t, err)
	_, err = svc.Users.Users.GetAll(ctx, nil)
	require.NoError(t, err)
	_, err = svc.Users.Profiles.GetByID(ctx, 2)
	require.NoError(t, err)

	want := []recorded{
		{http.MethodGet, "/api/v1/items/?search=foo", "Token tok"},
		{http.MethodGet, "/api/v1/items/7/", "Token tok"},
		{http.MethodPost, "/api/v1/categories/", "Token tok"},
		{http.MethodPut, "/api/v1/suppliers/3/", "Token tok"},
		{http.MethodDelete, "/api/v1/items/9/", "Token tok"},
		{http.MethodGet, "/api/v1/items/low_stock/", "Token tok"},
		{http.MethodGet, "/api/v1/items/by_category/?category=4", "Token tok"},
		{http.MethodGet, "/api/v1/items/?search=red+%26+blue", "Token tok"},
		{http.MethodGet, "/api/v1/users/", "Token tok"},
		{http.MethodGet, "/api/v1/profiles/2/", "Token tok"},
	}
	assert.Equal(t, want, *calls)
}

func TestGetAllAcceptsBareArray(t *testing.T) {
	svc, _, _ := recordingClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`))
	})
	page, err := svc.Inventory.Categories.GetAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, 2, page.Count)
}

func TestLoginPersistsToken(t *testing.T) {
	svc, calls, tokens := recordingClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"fresh"}`))
	})
	ctx := context.Background()

	resp, err := svc.Auth.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.Token)

	got, err := tokens.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
	assert.Empty(t, (*calls)[0].auth, "login must not send a token")
}

func TestRegisterWithoutTokenLeavesStore(t *testing.T) {
	svc, _, tokens := recordingClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":1,"email":"a@b.c"}}`))
	})
	_, err := svc.Auth.Register(context.Background(), dto.RegisterRequest{Email: "a@b.c", Password: "longenough"})
	require.NoError(t, err)
	_, err = tokens.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogoutRemovesTokenOnServerFailure(t *testing.T) {
	svc, calls, tokens := recordingClient(t, "old", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := svc.Auth.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Token old", (*calls)[0].auth)

	_, err = tokens.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileRoundTrip(t *testing.T) {
	svc, calls, _ := recordingClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"email":"new@example.com","first_name":"Ada","last_name":"L"}`))
	})
	user, err := svc.Auth.UpdateProfile(context.Background(), dto.ProfileUpdate{FirstName: "Ada", LastName: "L", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", user.DisplayName())
	assert.Equal(t, recorded{http.MethodPut, "/api/v1/auth/profile/", "Token tok"}, (*calls)[0])
}
