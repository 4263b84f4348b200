package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the publication state of a project or post
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Entry holds the columns shared by projects and posts
type Entry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null" validate:"required,max=200"`
	Title     string    `json:"title" gorm:"not null" validate:"required,max=200"`
	Category  string    `json:"category" gorm:"default:null"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url;default:null" validate:"omitempty,url"`
	Markdown  string    `json:"markdown" gorm:"type:text;not null"`
	Status    Status    `json:"status" gorm:"type:varchar(16);not null;default:'draft'" validate:"oneof=draft published"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the id; it is never changed afterwards
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	return nil
}

// IsPublished reports whether the entry is visible to everyone
func (e Entry) IsPublished() bool {
	return e.Status == StatusPublished
}
