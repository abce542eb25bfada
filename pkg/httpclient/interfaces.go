package httpclient

import "context"

// Response is the slice of an HTTP response the API client reads.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Tests and callers can swap in their own transport.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Closer is implemented by clients that hold pooled connections.
type Closer interface {
	Close() error
}
