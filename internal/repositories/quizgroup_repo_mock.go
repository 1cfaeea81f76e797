package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
)

// MockQuizGroupRepository is an in-memory implementation of QuizGroupRepository.
type MockQuizGroupRepository struct {
	groups map[string]models.QuizGroup
	mu     sync.RWMutex
}

// NewMockQuizGroupRepository creates a new instance of MockQuizGroupRepository.
func NewMockQuizGroupRepository() *MockQuizGroupRepository {
	return &MockQuizGroupRepository{
		groups: make(map[string]models.QuizGroup),
	}
}

// GetAll returns all groups, newest first.
func (r *MockQuizGroupRepository) GetAll() ([]models.QuizGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]models.QuizGroup, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.After(groups[j].CreatedAt) })
	return groups, nil
}

// GetByID returns a group by its ID.
func (r *MockQuizGroupRepository) GetByID(id string) (*models.QuizGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, apperrors.NotFound("quiz group with ID %s not found", id)
	}
	return &group, nil
}

// Create adds a new group.
func (r *MockQuizGroupRepository) Create(group *models.QuizGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	now := time.Now()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now
	r.groups[group.ID] = *group
	return nil
}

// Update modifies an existing group.
func (r *MockQuizGroupRepository) Update(group *models.QuizGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; !ok {
		return apperrors.NotFound("quiz group with ID %s not found for update", group.ID)
	}
	group.UpdatedAt = time.Now()
	r.groups[group.ID] = *group
	return nil
}

// Delete removes a group.
func (r *MockQuizGroupRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return apperrors.NotFound("quiz group with ID %s not found for deletion", id)
	}
	delete(r.groups, id)
	return nil
}

// TitleTaken reports whether another group holds the title.
func (r *MockQuizGroupRepository) TitleTaken(title, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Title == title && g.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
