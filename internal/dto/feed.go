package dto

import "yen-network/internal/domain"

// Message types sent on the notification feed.
const (
	TypeNotification = "notification"
	TypeError        = "error"
)

// FeedMessage is one frame on the WebSocket notification feed.
type FeedMessage struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification,omitempty"`
	Message      string               `json:"message,omitempty"`
}

// NewNotificationMessage wraps n for the feed.
func NewNotificationMessage(n *domain.Notification) FeedMessage {
	return FeedMessage{Type: TypeNotification, Notification: n}
}

// NewErrorMessage builds an error frame.
func NewErrorMessage(message string) FeedMessage {
	return FeedMessage{Type: TypeError, Message: message}
}
