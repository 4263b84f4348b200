package models

import (
	"time"
)

// User is a person who logged in through the OAuth provider.
// ID is the provider's user id, not generated here.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"default:null"`
	DisplayName     string    `json:"displayName" gorm:"not null"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"column:profile_image_url;default:null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
