package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkErrorMessage is reported when the API could not be reached.
const NetworkErrorMessage = "Network error. Please check your connection."

var (
	// ErrNotLoggedIn is returned by calls that need a session when there is none.
	ErrNotLoggedIn = errors.New("client: not logged in")
	// ErrNetwork wraps transport failures.
	ErrNetwork = errors.New(NetworkErrorMessage)
)

// APIError is a non-2xx response. Messages holds validation failures.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Messages   []string `json:"errors"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Messages) > 0 {
		msg = strings.Join(e.Messages, "; ")
	}
	if msg == "" {
		msg = "An error occurred"
	}
	return fmt.Sprintf("client: %s (%d)", msg, e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
