package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionType says what the sender is looking for.
type ConnectionType string

const (
	ConnectionMentor   ConnectionType = "mentor"
	ConnectionInvestor ConnectionType = "investor"
	ConnectionPartner  ConnectionType = "partner"
)

// Valid reports whether t is a known connection type.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionMentor, ConnectionInvestor, ConnectionPartner:
		return true
	}
	return false
}

// ConnectionStatus is the state of a connection request.
// pending -> accepted and pending -> rejected are the only transitions.
type ConnectionStatus string

const (
	StatusPending  ConnectionStatus = "pending"
	StatusAccepted ConnectionStatus = "accepted"
	StatusRejected ConnectionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s ConnectionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// MaxConnectionMessage is the longest message a request may carry.
const MaxConnectionMessage = 500

// Connection is a directed relationship request between two users.
// PairKey is derived from both user ids so the reverse pair collides too.
type Connection struct {
	ID         string           `gorm:"type:char(36);primaryKey"`
	SenderID   string           `gorm:"type:char(36);not null;uniqueIndex:idx_sender_receiver,priority:1"`
	ReceiverID string           `gorm:"type:char(36);not null;uniqueIndex:idx_sender_receiver,priority:2;index"`
	PairKey    string           `gorm:"type:varchar(80);not null;uniqueIndex:idx_pair_key"`
	Type       ConnectionType   `gorm:"type:varchar(20);not null"`
	Status     ConnectionStatus `gorm:"type:varchar(20);not null;default:pending"`
	Message    string           `gorm:"type:varchar(500)"`
	CreatedAt  time.Time        `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}

// BeforeCreate assigns the ID and the pair key.
func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.PairKey = PairKeyFor(c.SenderID, c.ReceiverID)
	return nil
}

// PairKeyFor returns the same key for (a, b) and (b, a).
func PairKeyFor(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
