package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account of the quiz service.
type User struct {
	ID         string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(150)"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(254)"`
	Nickname   string    `json:"nickname" gorm:"uniqueIndex;type:varchar(30)"`
	Password   string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsActive   bool      `json:"-" gorm:"default:true"`
	IsStaff    bool      `json:"-" gorm:"default:false"`
	DateJoined time.Time `json:"-"`
}

// UserProfile is the public representation of a user.
type UserProfile struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	DateJoined string `json:"date_joined"`
}

// Profile returns the public fields of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		Username:   u.Username,
		Email:      u.Email,
		Nickname:   u.Nickname,
		DateJoined: u.DateJoined.Format("2006-01-02 15:04:05"),
	}
}

// NewAnonymousNickname generates a fresh anonymous nickname. It is invoked per
// registration so no two users ever share a default.
func NewAnonymousNickname() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("anon-%s", hex[:12])
}
