package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply left by a logged in user on a project
type Comment struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	ParentPostID string    `json:"parentPostId" gorm:"type:uuid;not null;index"`
	UserID       string    `json:"userId" gorm:"not null;index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
