package models

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned for an empty or whitespace-only query before
// any network call is attempted.
var ErrInvalidQuery = errors.New("empty search query")

// ErrMissingCredential is returned when the relay has no upstream API key
// configured. The relay still starts; the error surfaces per request.
var ErrMissingCredential = errors.New("search credential is not configured")

// UpstreamError reports a non-success HTTP status from a provider. The relay
// mirrors Status and Body verbatim to its own caller; the aggregator treats
// it as adapter failure. Transport-level failures (DNS, refused connection,
// context cancellation) are not UpstreamErrors and arrive as wrapped errors
// from the HTTP client.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}
