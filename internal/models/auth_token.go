package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// AuthToken is an opaque bearer credential. The unique index on UserID keeps a
// single active token per user; logging in again replaces the previous row.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;type:varchar(40)"`
	UserID    string    `gorm:"uniqueIndex;type:varchar(36)"`
	CreatedAt time.Time
}

// NewAuthToken generates a fresh token for the given user.
func NewAuthToken(userID string) (*AuthToken, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate token key: %w", err)
	}
	return &AuthToken{
		Key:       hex.EncodeToString(raw),
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}
