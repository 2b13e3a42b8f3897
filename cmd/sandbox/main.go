package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/stockroom/internal/config"
	"github.com/hongminglow/stockroom/internal/server"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

func main() {
	loadLocalEnv()

	cfg := config.LoadSandbox()
	logger := log.New(os.Stdout, "[sandbox] ", log.LstdFlags)
	srv := server.New(cfg, sandbox.NewStore(), logger)

	go func() {
		logger.Printf("sandbox API listening on %s%s", cfg.HTTPAddress(), server.APIPrefix)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
