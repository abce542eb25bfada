// Package defillama is a typed client for the DefiLlama REST API.
//
// Every endpoint has a blocking method (GetProtocols) and a non-blocking twin
// (GetProtocolsAsync) returning a Future. Both share argument validation,
// request building and response validation. A Client owns its HTTP transport
// and must be released with Close.
package defillama

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caentzminger/defillama/internal/config"
	"github.com/caentzminger/defillama/internal/logger"
	"github.com/caentzminger/defillama/pkg/httpclient"
)

// Logger is the structured logging surface used for request logs.
type Logger = logger.Logger

type hosts struct {
	api         string
	coins       string
	stablecoins string
	yields      string
}

// Client issues requests against the DefiLlama hosts. It is safe for concurrent use.
type Client struct {
	http          httpclient.Client
	ownsTransport bool
	timeout       time.Duration
	hosts         hosts
	headers       map[string]string
	log           Logger
	ownedLog      *logger.ZapLogger

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New builds a Client. Without WithHTTPClient it creates and owns a resty transport.
func New(opts ...Option) *Client {
	c := &Client{
		timeout: httpclient.DefaultTimeout,
		hosts: hosts{
			api:         config.DefaultAPIURL,
			coins:       config.DefaultCoinsURL,
			stablecoins: config.DefaultStablecoinsURL,
			yields:      config.DefaultYieldsURL,
		},
		headers: map[string]string{"Accept": "application/json"},
		log:     logger.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
		c.ownsTransport = true
	}
	return c
}

// NewFromEnv builds a Client from DEFILLAMA_* environment settings; opts are applied afterwards.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	base := []Option{
		WithAPIURL(cfg.APIURL),
		WithCoinsURL(cfg.CoinsURL),
		WithStablecoinsURL(cfg.StablecoinsURL),
		WithYieldsURL(cfg.YieldsURL),
		WithTimeout(cfg.Timeout),
	}
	for k, v := range cfg.Headers {
		base = append(base, WithHeader(k, v))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	if zl := logger.Init(cfg); zl != nil {
		base = append(base, withOwnedLogger(zl))
	}

	return New(append(base, opts...)...), nil
}

// Close releases the owned transport and flushes a logger built by NewFromEnv.
// It is idempotent; later calls return ErrClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.ownedLog != nil {
			// stdout cannot be fsynced on every platform; a failed flush is not a close failure.
			_ = c.ownedLog.Sync()
		}
		if !c.ownsTransport {
			return
		}
		if closer, ok := c.http.(httpclient.Closer); ok {
			c.closeErr = closer.Close()
		}
	})
	return c.closeErr
}

// get performs a GET against base+path and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, base, path string, query url.Values) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target := strings.TrimRight(base, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, target, c.headers)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}

	body := resp.Body()
	status := resp.StatusCode()
	meta := map[string]any{
		"url":        target,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}
	if status < 200 || status > 299 {
		c.log.WarnObj("defillama request failed", "request", meta)
		return nil, &RequestFailedError{URL: target, StatusCode: status, Body: string(body)}
	}
	c.log.DebugObj("defillama request completed", "request", meta)
	return body, nil
}

// fetch decodes and validates a response into T.
func fetch[T any](ctx context.Context, c *Client, base, path string, query url.Values) (T, error) {
	var out T
	body, err := c.get(ctx, base, path, query)
	if err != nil {
		return out, err
	}
	if err := decodeInto(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

func fetchOne[T any](ctx context.Context, c *Client, base, path string, query url.Values) (*T, error) {
	out, err := fetch[T](ctx, c, base, path, query)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchList decodes either a bare JSON array or an object wrapping it under key.
func fetchList[T any](ctx context.Context, c *Client, base, path string, query url.Values, key string) ([]T, error) {
	body, err := c.get(ctx, base, path, query)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := decodeEnvelope(body, key, &out); err != nil {
		return nil, err
	}
	return out, nil
}
