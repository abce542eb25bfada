package defillama

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument matches errors raised before any request is sent.
	ErrInvalidArgument = errors.New("defillama: invalid argument")
	// ErrRequestFailed matches non-2xx responses.
	ErrRequestFailed = errors.New("defillama: request failed")
	// ErrValidationFailed matches bodies that do not decode into the expected shape.
	ErrValidationFailed = errors.New("defillama: validation failed")
	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("defillama: client is closed")
)

// InvalidArgumentError reports a rejected call parameter.
type InvalidArgumentError struct {
	Param  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// RequestFailedError carries the status and body of a non-2xx response.
type RequestFailedError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("GET %s returned status %d body: %s", e.URL, e.StatusCode, responseSnippet(e.Body))
}

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

// ValidationError names the first offending field of a response body.
// Field is a dotted path using wire names, e.g. "coins[coingecko:ethereum].price" or "[3].name".
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

func invalidArg(param, reason string) error {
	return &InvalidArgumentError{Param: param, Reason: reason}
}

func responseSnippet(body string) string {
	const maxLen = 512
	s := strings.TrimSpace(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
