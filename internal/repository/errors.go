package repository

import "errors"

// Common repository errors.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrConflict means a conditional update matched no row in the expected state.
	ErrConflict = errors.New("repository: state conflict")
)

// Resource specific aliases.
var (
	ErrUserNotFound         = ErrNotFound
	ErrIdeaNotFound         = ErrNotFound
	ErrConnectionNotFound   = ErrNotFound
	ErrNotificationNotFound = ErrNotFound
)
