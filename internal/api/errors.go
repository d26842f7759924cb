package api

import (
	"errors"
	"fmt"
	"strings"
)

const ownPlaceMessage = "cannot review your own place"

// Error is a non-2xx response from the API. Status codes are not otherwise
// distinguished; Message is what the user sees.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Message returns the user facing text for err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Status returns the HTTP status carried by err, or 0 when err did not come
// from an API response.
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsOwnPlace(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(Message(err)), ownPlaceMessage)
}
