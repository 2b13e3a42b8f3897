package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/stockroom/internal/storage"
)

// RequestOptions tunes a single call. The zero value is an authenticated GET.
type RequestOptions struct {
	Method   string
	Body     any
	SkipAuth bool
}

// Client issues JSON requests against the API root and normalizes failures
// into HTTPError and NetworkError.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  storage.TokenStore
	logger  *log.Logger
}

// NewClient builds a client for baseURL (e.g. http://localhost:8000/api/v1).
// A nil httpClient gets a 15s timeout; a nil logger writes to stderr.
func NewClient(baseURL string, tokens storage.TokenStore, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[stockroom] ", log.LstdFlags)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens exposes the token store the client reads credentials from.
func (c *Client) Tokens() storage.TokenStore { return c.tokens }

// Do performs the request and returns the raw JSON body. A 204 or empty body
// yields a nil result.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + path

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if !opts.SkipAuth && c.tokens != nil {
		token, err := c.tokens.Get(ctx)
		switch {
		case err == nil:
			req.Header.Set("Authorization", "Token "+token)
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, fmt.Errorf("read auth token: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		nerr := &NetworkError{Method: method, URL: url, Err: err}
		c.logger.Printf("api request error: %v", nerr)
		return nil, nerr
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		nerr := &NetworkError{Method: method, URL: url, Err: fmt.Errorf("read response: %w", err)}
		c.logger.Printf("api request error: %v", nerr)
		return nil, nerr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := newHTTPError(resp.StatusCode, payload)
		c.logger.Printf("api request error: %s %s: %d %s", method, path, herr.Status, herr.Message)
		return nil, herr
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	return json.RawMessage(payload), nil
}

// Decode unmarshals a raw result into T. A nil result decodes to the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func call[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (T, error) {
	raw, err := c.Do(ctx, path, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](raw)
}
