package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// RefreshToken is an opaque server-side token record. The token string handed
// to the client is the row ID (a random jti).
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// RevokedToken blacklists an access-token jti when Redis is unavailable. Rows
// are written by utils.RevokeJTI and only ever looked up by ID.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

// NewRefreshToken creates an unsaved refresh token valid for the given number of days.
func NewRefreshToken(userID string, days int) (*RefreshToken, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return &RefreshToken{
		ID:        hex.EncodeToString(b),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(days) * 24 * time.Hour),
	}, nil
}
