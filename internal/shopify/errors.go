package shopify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamUnavailable marks failures where no response was received:
// connection refused, DNS errors, timeouts.
var ErrUpstreamUnavailable = errors.New("store API unavailable")

// ErrUpstreamMalformed marks a 2xx response whose body could not be decoded.
var ErrUpstreamMalformed = errors.New("malformed store API response")

// RejectedError is returned when the store API answers with a non-2xx status.
type RejectedError struct {
	StatusCode int
	Body       []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("store API rejected the request: status %d (%s)", e.StatusCode, e.Reason())
}

// Reason is an operator hint for the status code.
func (e *RejectedError) Reason() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "access token invalid or expired"
	case http.StatusForbidden:
		return "access token lacks the required scopes"
	case http.StatusNotFound:
		return "wrong store domain or API version"
	case http.StatusTooManyRequests:
		return "rate limited by the store API"
	}
	if e.StatusCode >= 500 {
		return "store API internal error"
	}
	return "unexpected status"
}

// Payload returns the upstream body as JSON when it parses, as text otherwise.
func (e *RejectedError) Payload() any {
	if len(e.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.Body, &v); err == nil {
		return v
	}
	return string(e.Body)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
