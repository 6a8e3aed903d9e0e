package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

// ResolvePolicy decides what accepting or rejecting an already resolved
// connection does.
type ResolvePolicy string

const (
	// ResolveError fails with ErrConnectionResolved.
	ResolveError ResolvePolicy = "error"
	// ResolveNoop returns the connection unchanged.
	ResolveNoop ResolvePolicy = "noop"
)

// ParseResolvePolicy maps a configuration value to a policy. Empty means ResolveError.
func ParseResolvePolicy(s string) (ResolvePolicy, error) {
	switch p := ResolvePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ResolveError:
		return ResolveError, nil
	case ResolveNoop:
		return ResolveNoop, nil
	default:
		return "", fmt.Errorf("unknown connection resolve policy %q", s)
	}
}

// ConnectionService implements the connection request state machine:
// pending -> accepted or pending -> rejected, driven by the receiver.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
	notifier Notifier
	policy   ResolvePolicy
}

// NewConnectionService creates a ConnectionService.
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository, notifier Notifier, policy ResolvePolicy) *ConnectionService {
	if connRepo == nil || userRepo == nil {
		panic("ConnectionRepository and UserRepository cannot be nil for ConnectionService")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if policy == "" {
		policy = ResolveError
	}
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo, notifier: notifier, policy: policy}
}

// Create sends a pending connection request from senderID to receiverID.
// At most one request may exist per unordered pair of users.
func (s *ConnectionService) Create(ctx context.Context, senderID, receiverID string, connType domain.ConnectionType, message string) (*domain.Connection, error) {
	logCtx := logrus.WithFields(logrus.Fields{"sender_id": senderID, "receiver_id": receiverID, "type": connType})

	if senderID == receiverID {
		return nil, ErrInvalidOperation
	}

	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load connection receiver")
		return nil, ErrInternalServer
	}

	existing, err := s.connRepo.FindBetween(ctx, senderID, receiverID)
	if err == nil && existing != nil {
		logCtx.WithField("connection_id", existing.ID).Warn("Connection request already exists")
		return nil, ErrConnectionExists
	}
	if err != nil && !errors.Is(err, repository.ErrConnectionNotFound) {
		logCtx.WithError(err).Error("Failed to check existing connection")
		return nil, ErrInternalServer
	}

	conn := &domain.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       connType,
		Status:     domain.StatusPending,
		Message:    strings.TrimSpace(message),
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		// The unique indexes catch a request created between the check and the insert.
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Connection request created concurrently")
			return nil, ErrConnectionExists
		}
		logCtx.WithError(err).Error("Failed to create connection")
		return nil, ErrInternalServer
	}
	conn.Receiver = *receiver
	conn.Receiver.Password = ""

	logCtx.WithField("connection_id", conn.ID).Info("Connection request sent")
	notify(ctx, s.notifier, domain.Notification{
		UserID:  receiverID,
		Kind:    domain.NotifyConnectionRequested,
		Subject: conn.ID,
		Body:    fmt.Sprintf("You have a new %s connection request", connType),
	})
	return conn, nil
}

// Accept moves a pending request to accepted. Only the receiver may accept.
func (s *ConnectionService) Accept(ctx context.Context, connectionID, actingUserID string) (*domain.Connection, error) {
	return s.resolve(ctx, connectionID, actingUserID, domain.StatusAccepted)
}

// Reject moves a pending request to rejected. Only the receiver may reject.
func (s *ConnectionService) Reject(ctx context.Context, connectionID, actingUserID string) (*domain.Connection, error) {
	return s.resolve(ctx, connectionID, actingUserID, domain.StatusRejected)
}

func (s *ConnectionService) resolve(ctx context.Context, connectionID, actingUserID string, to domain.ConnectionStatus) (*domain.Connection, error) {
	logCtx := logrus.WithFields(logrus.Fields{"connection_id": connectionID, "acting_user_id": actingUserID, "to": to})

	conn, err := s.load(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != actingUserID {
		logCtx.Warn("Connection resolve rejected: acting user is not the receiver")
		return nil, ErrForbidden
	}
	if conn.Status.Terminal() {
		return s.alreadyResolved(conn, logCtx)
	}

	if err := s.connRepo.Resolve(ctx, connectionID, to); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			logCtx.WithError(err).Error("Failed to resolve connection")
			return nil, ErrInternalServer
		}
		// Resolved by a concurrent request after we read it.
		if conn, err = s.load(ctx, connectionID); err != nil {
			return nil, err
		}
		return s.alreadyResolved(conn, logCtx)
	}
	conn.Status = to

	logCtx.Info("Connection resolved")
	kind := domain.NotifyConnectionAccepted
	if to == domain.StatusRejected {
		kind = domain.NotifyConnectionRejected
	}
	notify(ctx, s.notifier, domain.Notification{
		UserID:  conn.SenderID,
		Kind:    kind,
		Subject: conn.ID,
		Body:    fmt.Sprintf("Your %s connection request was %s", conn.Type, to),
	})
	return conn, nil
}

func (s *ConnectionService) load(ctx context.Context, id string) (*domain.Connection, error) {
	conn, err := s.connRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return nil, ErrConnectionNotFound
		}
		logrus.WithError(err).WithField("connection_id", id).Error("Failed to load connection")
		return nil, ErrInternalServer
	}
	return conn, nil
}

func (s *ConnectionService) alreadyResolved(conn *domain.Connection, logCtx *logrus.Entry) (*domain.Connection, error) {
	logCtx.WithField("status", conn.Status).Info("Connection already resolved")
	if s.policy == ResolveNoop {
		return conn, nil
	}
	return nil, ErrConnectionResolved
}

// ListForUser returns connections the user sent or received, newest first.
func (s *ConnectionService) ListForUser(ctx context.Context, userID string) ([]domain.Connection, error) {
	conns, err := s.connRepo.ListForUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list connections")
		return nil, ErrInternalServer
	}
	return conns, nil
}
