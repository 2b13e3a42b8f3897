package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/stockroom/internal/api"
	"github.com/hongminglow/stockroom/internal/config"
	"github.com/hongminglow/stockroom/internal/session"
	"github.com/hongminglow/stockroom/internal/storage"
	"github.com/hongminglow/stockroom/internal/storage/file"
	"github.com/hongminglow/stockroom/internal/storage/memory"
	"github.com/hongminglow/stockroom/internal/storage/postgres"
)

const usage = `usage: stockctl [-server URL] [-token T] [-v] <command> [flags]

commands:
  login        -email -password
  register     -email -password -confirm [-first] [-last]
  logout
  whoami
  profile      [-first] [-last] [-email]
  dashboard
  items        [-page] [-search] [-category] [-supplier] [-low]
  item         -id
  item-create  -name -price [-qty] [-threshold] [-category] [-supplier] [-description]
  item-update  -id [-name] [-price] [-qty] [-threshold] [-category] [-supplier] [-description]
  item-delete  -id
  low-stock
  categories   [-search]
  category-create -name [-description]
  suppliers    [-search]
  supplier-create -name [-email] [-phone] [-address]
  users        [-search]
  profiles
`

type app struct {
	cfg     config.Config
	svc     *api.Services
	session *session.Session
	logger  *log.Logger
	out     io.Writer
}

func main() {
	loadLocalEnv()

	server := flag.String("server", "", "Override API base URL (e.g. http://localhost:8000/api/v1)")
	token := flag.String("token", "", "Token to use with the memory token store")
	verbose := flag.Bool("v", false, "Log requests and errors to stderr")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.APIBaseURL = strings.TrimRight(*server, "/")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "[stockctl] ", log.LstdFlags)
	}

	tokens, closeTokens, err := openTokenStore(ctx, cfg, *token)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer closeTokens()

	client := api.NewClient(cfg.APIBaseURL, tokens, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	svc := api.NewServices(client)
	a := &app{
		cfg:     cfg,
		svc:     svc,
		session: session.New(svc.Auth, tokens, logger),
		logger:  logger,
		out:     os.Stdout,
	}

	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}
}

// openTokenStore returns the configured backend and a func releasing it.
func openTokenStore(ctx context.Context, cfg config.Config, token string) (storage.TokenStore, func(), error) {
	noop := func() {}
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return memory.NewStore(token), noop, nil
	case config.TokenStorePostgres:
		store, err := postgres.NewTokenStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		path := cfg.TokenPath
		if path == "" {
			var err error
			if path, err = file.DefaultPath(); err != nil {
				return nil, noop, err
			}
		}
		return file.NewStore(path), noop, nil
	}
}
