package repositories

import "github.com/arcsino/quizquartz-backend/internal/models"

// TokenRepository defines the interface for bearer token storage.
type TokenRepository interface {
	// Store saves the token, replacing any existing token for the same user.
	Store(token *models.AuthToken) error
	GetByKey(key string) (*models.AuthToken, error)
	DeleteByKey(key string) error
	DeleteByUser(userID string) error
}
