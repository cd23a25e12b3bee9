package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// One sentinel per failure class so call sites can branch on errors.Is
// instead of collapsing everything into a generic failure message.
var (
	ErrTransport       = errors.New("backend: transport failure")
	ErrUnauthorized    = errors.New("backend: unauthorized")
	ErrNotFound        = errors.New("backend: not found")
	ErrInvalidResponse = errors.New("backend: malformed response")
)

// APIError is a non-success HTTP status with whatever message the server
// supplied. It unwraps to the matching sentinel where one applies.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("backend: request failed (status %d)", e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
