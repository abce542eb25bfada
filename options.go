package defillama

import (
	"strings"
	"time"

	"github.com/caentzminger/defillama/internal/logger"
	"github.com/caentzminger/defillama/pkg/httpclient"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a transport. The caller keeps ownership; Close does not release it.
func WithHTTPClient(h httpclient.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout of the owned transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAPIURL overrides the api.llama.fi host.
func WithAPIURL(u string) Option { return func(c *Client) { setHost(&c.hosts.api, u) } }

// WithCoinsURL overrides the coins.llama.fi host.
func WithCoinsURL(u string) Option { return func(c *Client) { setHost(&c.hosts.coins, u) } }

// WithStablecoinsURL overrides the stablecoins.llama.fi host.
func WithStablecoinsURL(u string) Option {
	return func(c *Client) { setHost(&c.hosts.stablecoins, u) }
}

// WithYieldsURL overrides the yields.llama.fi host.
func WithYieldsURL(u string) Option { return func(c *Client) { setHost(&c.hosts.yields, u) } }

// WithBaseURL points every host at u. Handy for a single mock server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		setHost(&c.hosts.api, u)
		setHost(&c.hosts.coins, u)
		setHost(&c.hosts.stablecoins, u)
		setHost(&c.hosts.yields, u)
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return
		}
		c.headers[key] = value
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option { return WithHeader("User-Agent", ua) }

// WithLogger routes request logs to l.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithZapLogger routes request logs to a zap logger.
func WithZapLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = logger.FromZap(l)
		}
	}
}

// withOwnedLogger installs a logger the client created itself and flushes on Close.
func withOwnedLogger(l *logger.ZapLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
			c.ownedLog = l
		}
	}
}

func setHost(dst *string, u string) {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u != "" {
		*dst = u
	}
}
