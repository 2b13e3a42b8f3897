// Package server assembles the sandbox API: an in-memory stand-in for the
// inventory backend used in tests and local development.
package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/stockroom/internal/auth"
	"github.com/hongminglow/stockroom/internal/config"
	"github.com/hongminglow/stockroom/internal/http/handlers"
	"github.com/hongminglow/stockroom/internal/middleware"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

// APIPrefix is where every resource is mounted.
const APIPrefix = "/api/v1"

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewHandler builds the routed sandbox API over store. A nil logger discards
// request logs.
func NewHandler(store *sandbox.Store, tokens *auth.TokenManager, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := mux.NewRouter()
	handlers.NewHealthHandler(time.Now()).Register(r)

	api := r.PathPrefix(APIPrefix).Subrouter()
	accounts := handlers.NewAuthHandler(store, tokens)
	accounts.RegisterPublic(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireToken(accounts.Authenticate))
	accounts.RegisterProtected(protected)
	handlers.NewInventoryHandler(store, time.Now).Register(protected)
	handlers.NewUsersHandler(store, accounts).Register(protected)

	return middleware.CORS([]string{"*"}, middleware.Logging(logger, r))
}

// New wires a sandbox server from configuration.
func New(cfg config.SandboxConfig, store *sandbox.Store, logger *log.Logger) *Server {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(store, tokenManager, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
