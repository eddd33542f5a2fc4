package models

import "time"

// PendingRegistration is a half-finished signup started on the website.
// The Telegram bot completes it when the owner of the handle messages
// /start or /activate, and deletes it afterwards. Expired rows are removed
// whenever they are touched.
type PendingRegistration struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;not null;index" json:"username"`
	HashedPassword string    `gorm:"not null" json:"-"`
	TelegramHandle string    `gorm:"size:64;uniqueIndex;not null" json:"telegram_handle"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired reports whether the registration window has closed.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}
