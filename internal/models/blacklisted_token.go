package models

import "time"

// BlacklistedToken is a session token revoked before its natural
// expiry. A token present here is rejected regardless of cryptographic
// validity until ExpiresAt passes.
type BlacklistedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
