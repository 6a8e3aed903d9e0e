package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories is the closed set of idea categories.
var Categories = []string{
	"Technology",
	"Agriculture",
	"Healthcare",
	"Education",
	"Finance",
	"E-commerce",
	"Sustainability",
}

// MinFundingGoal is the smallest goal an idea may ask for.
const MinFundingGoal = 100

// Idea is a funding-seeking pitch owned by one user. CurrentFunding never
// exceeds FundingGoal and Likes always equals the number of IdeaLike rows.
type Idea struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	UserID         string    `gorm:"type:char(36);index;not null"`
	Title          string    `gorm:"type:varchar(100);not null"`
	Description    string    `gorm:"type:text;not null"`
	Category       string    `gorm:"type:varchar(32);index;not null"`
	FundingGoal    float64   `gorm:"not null"`
	CurrentFunding float64   `gorm:"not null;default:0"`
	Likes          int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Owner User `gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// FullyFunded reports whether the goal has been reached.
func (i *Idea) FullyFunded() bool {
	return i.CurrentFunding >= i.FundingGoal
}

// IdeaLike records that a user liked an idea; the composite key makes
// the liked-by set a set.
type IdeaLike struct {
	IdeaID    string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// IsCategory reports whether c is one of Categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
