package repository

import (
	"context"

	"yen-network/internal/domain"
)

// ConnectionRepository defines storage and retrieval of connection requests.
type ConnectionRepository interface {
	// Create inserts a pending connection. Either unique index (sender/receiver
	// or unordered pair) rejects duplicates with ErrDuplicateEntry.
	Create(ctx context.Context, conn *domain.Connection) error

	// FindByID returns the connection. Returns ErrConnectionNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Connection, error)

	// FindBetween returns the connection between two users in either direction.
	// Returns ErrConnectionNotFound when there is none.
	FindBetween(ctx context.Context, userA, userB string) (*domain.Connection, error)

	// ListForUser returns connections the user sent or received, newest first,
	// with sender and receiver loaded.
	ListForUser(ctx context.Context, userID string) ([]domain.Connection, error)

	// Resolve moves a pending connection to status. It returns ErrConflict when
	// the record is no longer pending.
	Resolve(ctx context.Context, id string, status domain.ConnectionStatus) error

	// CountByStatus returns the number of connections per status.
	CountByStatus(ctx context.Context) (map[domain.ConnectionStatus]int64, error)
}
