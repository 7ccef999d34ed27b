// Package fetch talks to the third-party APIs behind the dashboard: the
// weather provider, the news providers, and the monitored services
// themselves. Every call is context-bound with an enforced timeout and every
// failure is an *UpstreamError, so the refresh orchestrator can catch them
// at its boundary and degrade instead of surfacing raw provider errors.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies an upstream failure.
type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindHTTPError    ErrorKind = "http_error"
	KindNetworkError ErrorKind = "network_error"
	KindParseError   ErrorKind = "parse_error"
)

// ErrNotConfigured is returned by providers that need an API key when none
// is set. The orchestrator treats it like any other fetch failure and falls
// through to cache or static data.
var ErrNotConfigured = errors.New("provider not configured")

// UpstreamError is a typed third-party failure. It never reaches an HTTP
// client verbatim.
type UpstreamError struct {
	Kind ErrorKind
	Op   string // which call failed, e.g. "weather current"
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// wrapTransportErr turns an http.Client error into a typed upstream error,
// distinguishing timeouts from other network failures.
func wrapTransportErr(op string, err error) *UpstreamError {
	kind := KindNetworkError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &UpstreamError{Kind: kind, Op: op, Err: err}
}

// httpStatusErr reports an unexpected provider status code.
func httpStatusErr(op string, resp *http.Response) *UpstreamError {
	return &UpstreamError{
		Kind: KindHTTPError,
		Op:   op,
		Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
	}
}

// parseErr reports a malformed provider response.
func parseErr(op string, err error) *UpstreamError {
	return &UpstreamError{Kind: KindParseError, Op: op, Err: err}
}
