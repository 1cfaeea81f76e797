package repositories

import (
	"errors"
	"fmt"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. Duplicate-key failures from concurrent
// registrations surface as validation errors, matching the pre-check path.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("username, email or nickname already in use")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// UsernameTaken reports whether the username is held by a user other than excludeID.
func (r *GORMUserRepository) UsernameTaken(username, excludeID string) (bool, error) {
	return r.fieldTaken("username", username, excludeID)
}

// EmailTaken reports whether the email is held by a user other than excludeID.
func (r *GORMUserRepository) EmailTaken(email, excludeID string) (bool, error) {
	return r.fieldTaken("email", email, excludeID)
}

// NicknameTaken reports whether the nickname is held by a user other than excludeID.
func (r *GORMUserRepository) NicknameTaken(nickname, excludeID string) (bool, error) {
	return r.fieldTaken("nickname", nickname, excludeID)
}

func (r *GORMUserRepository) fieldTaken(field, value, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where(field+" = ?", value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return count > 0, nil
}

// Update persists changed user fields.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("username, email or nickname already in use")
		}
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Delete removes the user row together with all owned content in one
// transaction. Quizzes in the user's groups are detached before the groups
// are removed; the user's own quizzes and their tag associations go with them.
func (r *GORMUserRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM quiz_tags WHERE quiz_id IN (SELECT id FROM quizzes WHERE created_by_id = ?)", id,
		).Error; err != nil {
			return fmt.Errorf("failed to remove tag associations: %w", err)
		}
		if err := tx.Where("created_by_id = ?", id).Delete(&models.Quiz{}).Error; err != nil {
			return fmt.Errorf("failed to delete owned quizzes: %w", err)
		}
		if err := tx.Model(&models.Quiz{}).
			Where("related_group_id IN (SELECT id FROM quiz_groups WHERE created_by_id = ?)", id).
			Update("related_group_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach quizzes from owned groups: %w", err)
		}
		if err := tx.Where("created_by_id = ?", id).Delete(&models.QuizGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete owned quiz groups: %w", err)
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("user with ID %s not found for deletion", id)
		}
		return nil
	})
}
