// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered QuiteMap account.
//
// Accounts created through the JSON API are active immediately. Accounts
// created through the Telegram registration bot start inactive and carry an
// ActivationToken until the owner visits the activation link.
//
// Email uniqueness is enforced by a partial unique index in the SQL
// migrations (bot-created accounts have no email, and empty values may
// repeat) and checked again at the handler layer.
//
// IsActive carries no gorm default: gorm treats false as the zero value and
// would swap in the column default on insert, so every creation site sets the
// field explicitly.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email           string         `gorm:"size:100;index" json:"email,omitempty"`
	FullName        string         `gorm:"size:100" json:"full_name,omitempty"`
	Password        string         `gorm:"not null" json:"-"`
	TelegramHandle  string         `gorm:"size:64;index" json:"telegram_handle,omitempty"`
	ActivationToken string         `gorm:"size:64;index" json:"-"`
	IsActive        bool           `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Posts           []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
