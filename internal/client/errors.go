package client

import (
	"errors"
	"fmt"
)

// ErrNoDraft is returned when saving without an open dialog.
var ErrNoDraft = errors.New("no book is being edited")

// ErrBookNotLoaded is returned when editing a book that is not in the current list.
var ErrBookNotLoaded = errors.New("book is not in the loaded list")

// APIError is a non-2xx response from the inventory API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inventory API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("inventory API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when the request
// never got a response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
