// ABOUTME: Error types for the complaint API client
// ABOUTME: Carries server status and message through the request pipeline

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the complaint API. Message carries the
// server-supplied text verbatim so callers can surface it to users.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the API, i.e. an
// authentication failure that survived the refresh retry.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the API: a valid
// identity with insufficient role. The session takes no corrective
// action for these.
func IsForbidden(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// IsConflict reports whether err is a 409 from the API, such as a
// duplicate email or matric number on registration.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
