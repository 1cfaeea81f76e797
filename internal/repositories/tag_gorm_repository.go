package repositories

import (
	"errors"
	"fmt"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// Create inserts a new tag.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Validation("tag with name '%s' already exists", tag.Name)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByID retrieves a tag by its ID.
func (r *GORMTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get tag by ID %s: %w", id, err)
	}
	return &tag, nil
}

// ListPublic retrieves all non-private tags ordered by name.
func (r *GORMTagRepository) ListPublic() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("is_private = ?", false).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list public tags: %w", err)
	}
	return tags, nil
}
