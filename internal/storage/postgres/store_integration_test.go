package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/stockroom/internal/storage"
)

// TestTokenStoreIntegration exercises the token table against a live database.
func TestTokenStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_TOKENSTORE_INTEGRATION") != "true" {
		t.Skip("set RUN_TOKENSTORE_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewTokenStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()
	store.key = fmt.Sprintf("authToken_test_%d", time.Now().UnixNano())
	defer store.Remove(ctx)

	if _, err := store.Get(ctx); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	for _, token := range []string{"first", "second"} {
		if err := store.Set(ctx, token); err != nil {
			t.Fatalf("set %q: %v", token, err)
		}
		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != token {
			t.Fatalf("token mismatch: want %q got %q", token, got)
		}
	}

	if err := store.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
