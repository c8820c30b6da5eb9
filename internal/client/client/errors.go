package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable   = errors.New("assistant unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrEmptyResponse = errors.New("empty assistant response")
	ErrNotConfigured = errors.New("assistant not configured")
)

// ChatServiceError reports a failed assistant call. StatusCode is zero when
// no HTTP response was received.
type ChatServiceError struct {
	StatusCode int
	Err        error
}

func (e *ChatServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat service error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chat service error: %v", e.Err)
}

func (e *ChatServiceError) Unwrap() error {
	return e.Err
}

// mapStatus turns a non-2xx status into a sentinel where one applies.
func mapStatus(code int, body string) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests, code >= 500:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected response: %s", body)
	}
}
