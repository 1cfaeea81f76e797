package repositories

import (
	"errors"
	"fmt"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMQuizGroupRepository is a GORM implementation of QuizGroupRepository.
type GORMQuizGroupRepository struct {
	db *gorm.DB
}

// NewGORMQuizGroupRepository creates a new instance of GORMQuizGroupRepository.
func NewGORMQuizGroupRepository(db *gorm.DB) *GORMQuizGroupRepository {
	return &GORMQuizGroupRepository{
		db: db,
	}
}

// GetAll retrieves all quiz groups, newest first.
func (r *GORMQuizGroupRepository) GetAll() ([]models.QuizGroup, error) {
	var groups []models.QuizGroup
	if err := r.db.Preload("CreatedBy").Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to get all quiz groups: %w", err)
	}
	return groups, nil
}

// GetByID retrieves a single quiz group by its ID.
func (r *GORMQuizGroupRepository) GetByID(id string) (*models.QuizGroup, error) {
	var group models.QuizGroup
	if err := r.db.Preload("CreatedBy").First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("quiz group with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get quiz group by ID %s: %w", id, err)
	}
	return &group, nil
}

// Create inserts a new quiz group.
func (r *GORMQuizGroupRepository) Create(group *models.QuizGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if err := r.db.Omit("CreatedBy").Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("quiz group title '%s' is already taken by another user", group.Title)
		}
		return fmt.Errorf("failed to create quiz group: %w", err)
	}
	return nil
}

// Update persists changed group fields and refreshes the updated timestamp.
func (r *GORMQuizGroupRepository) Update(group *models.QuizGroup) error {
	res := r.db.Omit("CreatedBy").Save(group)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("quiz group title '%s' is already taken by another user", group.Title)
		}
		return fmt.Errorf("failed to update quiz group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("quiz group with ID %s not found for update", group.ID)
	}
	return nil
}

// Delete detaches associated quizzes, then removes the group. The quizzes
// themselves survive.
func (r *GORMQuizGroupRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quiz{}).
			Where("related_group_id = ?", id).
			Update("related_group_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach quizzes from group %s: %w", id, err)
		}
		res := tx.Delete(&models.QuizGroup{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quiz group: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("quiz group with ID %s not found for deletion", id)
		}
		return nil
	})
}

// TitleTaken reports whether the title is held by a group other than excludeID.
func (r *GORMQuizGroupRepository) TitleTaken(title, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.QuizGroup{}).Where("title = ?", title)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check title uniqueness: %w", err)
	}
	return count > 0, nil
}
