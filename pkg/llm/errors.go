package llm

import (
	"errors"
	"fmt"
)

// Provider failure taxonomy. The orchestrator catches these and advances the
// fallback chain; none of them cross the public agent boundary.
var (
	// ErrProviderUnavailable means the probe failed or a required credential is missing
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRequestFailed means a non-success response or malformed payload
	ErrProviderRequestFailed = errors.New("provider request failed")

	// ErrAllProvidersExhausted is terminal and internal-only, never surfaced to callers
	ErrAllProvidersExhausted = errors.New("all providers exhausted")
)

// RequestError wraps a vendor failure with the provider id and HTTP status.
type RequestError struct {
	ProviderId string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.ProviderId, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.ProviderId, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError builds a RequestError that matches ErrProviderRequestFailed
// through errors.Is.
func NewRequestError(providerId string, statusCode int, err error) *RequestError {
	return &RequestError{
		ProviderId: providerId,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %v", ErrProviderRequestFailed, err),
	}
}
