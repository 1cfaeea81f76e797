package repositories

import (
	"errors"
	"fmt"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMQuizRepository is a GORM implementation of QuizRepository.
type GORMQuizRepository struct {
	db *gorm.DB
}

// NewGORMQuizRepository creates a new instance of GORMQuizRepository.
func NewGORMQuizRepository(db *gorm.DB) *GORMQuizRepository {
	return &GORMQuizRepository{
		db: db,
	}
}

// GetAll retrieves all quizzes with their associations, newest first.
func (r *GORMQuizRepository) GetAll() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.
		Preload("Tags").
		Preload("RelatedGroup").
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all quizzes: %w", err)
	}
	return quizzes, nil
}

// GetByID retrieves a single quiz with its associations.
func (r *GORMQuizRepository) GetByID(id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.
		Preload("Tags").
		Preload("RelatedGroup").
		Preload("CreatedBy").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("quiz with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return &quiz, nil
}

// Create inserts the quiz row and its tag associations atomically.
func (r *GORMQuizRepository) Create(quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if err := r.db.Omit("CreatedBy", "RelatedGroup").Create(quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("quiz could not be created due to a uniqueness conflict")
		}
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// Update saves the quiz fields and optionally replaces the full tag set.
func (r *GORMQuizRepository) Update(quiz *models.Quiz, replaceTags bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Tags", "CreatedBy", "RelatedGroup").Save(quiz)
		if res.Error != nil {
			return fmt.Errorf("failed to update quiz: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("quiz with ID %s not found for update", quiz.ID)
		}
		if replaceTags {
			if err := tx.Model(quiz).Association("Tags").Replace(quiz.Tags); err != nil {
				return fmt.Errorf("failed to replace quiz tags: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the quiz and its tag association rows.
func (r *GORMQuizRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM quiz_tags WHERE quiz_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to remove tag associations: %w", err)
		}
		res := tx.Delete(&models.Quiz{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quiz: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("quiz with ID %s not found for deletion", id)
		}
		return nil
	})
}
