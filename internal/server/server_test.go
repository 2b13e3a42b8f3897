package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/stockroom/internal/auth"
	"github.com/hongminglow/stockroom/internal/config"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

func TestNewHandlerRoutes(t *testing.T) {
	ts := httptest.NewServer(NewHandler(sandbox.NewStore(), auth.NewTokenManager("s", "test", time.Minute), nil))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(ts.URL + APIPrefix + "/items/")
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
}

func TestNewUsesConfiguredAddress(t *testing.T) {
	cfg := config.SandboxConfig{Port: "9123", JWTSecret: "s", JWTIssuer: "i", JWTTTL: time.Minute}
	srv := New(cfg, sandbox.NewStore(), nil)
	assert.Equal(t, ":9123", srv.inner.Addr)
}
