package service

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("User not found")
	ErrIdeaNotFound         = errors.New("Idea not found")
	ErrConnectionNotFound   = errors.New("Connection not found")
	ErrNotificationNotFound = errors.New("Notification not found")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("Email already exists")

	ErrInvalidOperation   = errors.New("You cannot connect with yourself")
	ErrConnectionExists   = errors.New("Connection request already exists")
	ErrConnectionResolved = errors.New("Connection request has already been resolved")
	ErrForbidden          = errors.New("You are not authorized to perform this action")

	ErrInternalServer = errors.New("internal server error")
)

// ValidationError carries every field level failure of one request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError returns nil when there are no messages.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}
