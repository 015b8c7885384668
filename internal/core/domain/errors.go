package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrNotFound = errors.New("not found")
var ErrSessionExpired = errors.New("session expired")
var ErrNotDeletable = errors.New("purchased items cannot be deleted")

// APIError carries a backend rejection. Message is the server's text
// verbatim when one was present, so it can be surfaced to the user as-is.
// Status 0 means the request never produced an HTTP response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is maps well-known statuses onto the sentinel errors above so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage extracts the text to show in a notification: the server's
// message when err is an APIError with one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
