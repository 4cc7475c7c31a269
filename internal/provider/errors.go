package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy shared by every provider client. Callers classify with
// errors.Is; the API layer maps each kind onto an HTTP status and a
// user-facing hint. None of these are retried anywhere in this layer.
var (
	// ErrInvalidArgument means the caller supplied zero or conflicting
	// identity parameters. Surfaced verbatim as a usage hint.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAuth means the upstream rejected the credential (401/403).
	ErrAuth = errors.New("authentication rejected")

	// ErrNotFound means the identity or song does not exist upstream (404).
	// Never treated as retryable.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited means the upstream throttled the request (429).
	// No automatic backoff is performed here.
	ErrRateLimited = errors.New("rate limited")

	// ErrCapability means the selected provider does not support the
	// requested operation. The aggregation layer either satisfies the call
	// via fallback or surfaces it.
	ErrCapability = errors.New("operation not supported by provider")

	// ErrUnbound means no usable credential or identity could be resolved
	// for the user. Callers must present a bind instruction, not a generic
	// failure.
	ErrUnbound = errors.New("user has no bound score provider")

	// ErrUpstream covers any other non-2xx or transport failure.
	ErrUpstream = errors.New("upstream error")
)

// StatusError wraps the taxonomy sentinel matching an HTTP status code,
// keeping the provider name and URL for logs.
func StatusError(providerName string, status int, url string) error {
	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrAuth
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	default:
		kind = ErrUpstream
	}
	return fmt.Errorf("%s returned %d for %s: %w", providerName, status, url, kind)
}
