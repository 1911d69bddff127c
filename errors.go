package discordauth

import (
	"fmt"
	"net/http"

	"github.com/giantswarm/discord-oauth/internal/util"
)

// Operation names used in errors, logs and telemetry.
const (
	OperationExchangeCode = "exchange_code"
	OperationFetchUser    = "fetch_user"
)

// maxErrorBodyLen bounds how much of an upstream body is rendered by Error().
// The full body is always kept in UpstreamRequestError.Body.
const maxErrorBodyLen = 256

// SchemaViolation is returned when a Discord response does not match the
// expected shape: a required field is missing or null, or a field has the
// wrong JSON type.
type SchemaViolation struct {
	Model  string // "token" or "user"
	Field  string // offending field, empty when the body could not be decoded at all
	Reason string
}

// Error implements the error interface
func (e *SchemaViolation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation in %s response: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("schema violation in %s response: field %q %s", e.Model, e.Field, e.Reason)
}

// UpstreamRequestError is returned when Discord answers with a non-success
// status. StatusCode and Body are surfaced exactly as received.
type UpstreamRequestError struct {
	Operation  string
	StatusCode int

	// Body is the response body as received, read up to 1 MiB. A longer body
	// is cut at that limit without notice.
	Body []byte
}

// Error implements the error interface
func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("discord %s failed with status %d: %s",
		e.Operation, e.StatusCode, util.SafeTruncate(string(e.Body), maxErrorBodyLen))
}

// Retryable reports whether the failure is plausibly transient (5xx or 429).
// The library never retries on its own; this is a hint for callers that
// wrap calls in their own retry policy.
func (e *UpstreamRequestError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// TransportError is returned when the request never produced an HTTP
// response (DNS, TLS, connection reset, context cancellation).
type TransportError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("discord %s request failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
