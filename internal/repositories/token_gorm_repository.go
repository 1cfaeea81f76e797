package repositories

import (
	"errors"
	"fmt"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"gorm.io/gorm"
)

// GORMTokenRepository stores auth tokens in the relational database.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// Store deletes any previous token of the user and inserts the new one, so a
// login elsewhere revokes the prior session.
func (r *GORMTokenRepository) Store(token *models.AuthToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.AuthToken{}).Error; err != nil {
			return fmt.Errorf("failed to revoke previous token: %w", err)
		}
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		return nil
	})
}

// GetByKey retrieves a token by its key.
func (r *GORMTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("token not found")
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// DeleteByKey revokes a single token.
func (r *GORMTokenRepository) DeleteByKey(key string) error {
	if err := r.db.Delete(&models.AuthToken{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteByUser revokes whatever token the user currently holds.
func (r *GORMTokenRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.AuthToken{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete token for user %s: %w", userID, err)
	}
	return nil
}
