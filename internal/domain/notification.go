package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationKind classifies a notification.
type NotificationKind string

const (
	NotifyConnectionRequested NotificationKind = "connection_requested"
	NotifyConnectionAccepted  NotificationKind = "connection_accepted"
	NotifyConnectionRejected  NotificationKind = "connection_rejected"
	NotifyIdeaFunded          NotificationKind = "idea_funded"
	NotifyIdeaFullyFunded     NotificationKind = "idea_fully_funded"
)

// Notification is a message delivered to one user. Subject is the id of
// the connection or idea it refers to.
type Notification struct {
	ID        string           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:char(36);index;not null" json:"userId"`
	Kind      NotificationKind `gorm:"type:varchar(32);not null" json:"kind"`
	Subject   string           `gorm:"type:char(36)" json:"subject"`
	Body      string           `gorm:"type:varchar(500)" json:"body"`
	IsRead    bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"createdAt"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// PlatformStats summarizes the platform for admins.
type PlatformStats struct {
	Users              int64                      `json:"users"`
	UsersByRole        map[Role]int64             `json:"usersByRole"`
	Ideas              int64                      `json:"ideas"`
	FullyFundedIdeas   int64                      `json:"fullyFundedIdeas"`
	TotalFundingGoal   float64                    `json:"totalFundingGoal"`
	TotalFundingRaised float64                    `json:"totalFundingRaised"`
	Connections        int64                      `json:"connections"`
	ConnectionsByState map[ConnectionStatus]int64 `json:"connectionsByStatus"`
}
