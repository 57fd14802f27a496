package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoCandidates is returned when a provider search yields no food records
	ErrNoCandidates = errors.New("no matching foods")

	// ErrNoMatch is returned when a simple provider has nothing for the query
	ErrNoMatch = errors.New("no match for query")

	// ErrMissingAPIKey is returned when a flow requires a credential that is not configured
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrUpstreamUnavailable is returned after the retry budget is exhausted
	// on transient failures
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ProviderStatusError is a terminal provider rejection: a non-5xx HTTP
// error status. It is never retried and carries the upstream status code.
type ProviderStatusError struct {
	StatusCode int
}

func (e *ProviderStatusError) Error() string {
	return fmt.Sprintf("provider rejected request: status %d", e.StatusCode)
}
