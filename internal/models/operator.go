package models

import (
	"time"
)

// Operator is a person who can sign in and hold a session.
type Operator struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Username     string     `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email        *string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	GoogleID     *string    `gorm:"uniqueIndex;size:64" json:"-"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastSeen     *time.Time `json:"lastSeen"`
}

func (Operator) TableName() string {
	return "operators"
}

// GoogleUserInfo is the subset of the Google userinfo response we keep.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
