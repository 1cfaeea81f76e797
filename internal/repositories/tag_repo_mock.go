package repositories

import (
	"sort"
	"sync"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
)

// MockTagRepository is an in-memory implementation of TagRepository.
type MockTagRepository struct {
	tags map[string]models.Tag
	mu   sync.RWMutex
}

// NewMockTagRepository creates a new instance of MockTagRepository.
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{
		tags: make(map[string]models.Tag),
	}
}

// Create adds a new tag.
func (r *MockTagRepository) Create(tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	for _, existing := range r.tags {
		if existing.Name == tag.Name {
			return apperrors.Validation("tag with name '%s' already exists", tag.Name)
		}
	}
	r.tags[tag.ID] = *tag
	return nil
}

// GetByID returns a tag by its ID.
func (r *MockTagRepository) GetByID(id string) (*models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.tags[id]
	if !ok {
		return nil, apperrors.NotFound("tag with ID %s not found", id)
	}
	return &tag, nil
}

// ListPublic returns all non-private tags ordered by name.
func (r *MockTagRepository) ListPublic() ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		if !tag.IsPrivate {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}
