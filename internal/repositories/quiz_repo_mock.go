package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/google/uuid"
)

// MockQuizRepository is an in-memory implementation of QuizRepository.
type MockQuizRepository struct {
	quizzes map[string]models.Quiz
	mu      sync.RWMutex
}

// NewMockQuizRepository creates a new instance of MockQuizRepository.
func NewMockQuizRepository() *MockQuizRepository {
	return &MockQuizRepository{
		quizzes: make(map[string]models.Quiz),
	}
}

// GetAll returns all quizzes, newest first.
func (r *MockQuizRepository) GetAll() ([]models.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quizzes := make([]models.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		quizzes = append(quizzes, q)
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].CreatedAt.After(quizzes[j].CreatedAt) })
	return quizzes, nil
}

// GetByID returns a quiz by its ID.
func (r *MockQuizRepository) GetByID(id string) (*models.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, apperrors.NotFound("quiz with ID %s not found", id)
	}
	return &quiz, nil
}

// Create adds a new quiz with its tag set.
func (r *MockQuizRepository) Create(quiz *models.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	now := time.Now()
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = now
	}
	quiz.UpdatedAt = now
	r.quizzes[quiz.ID] = *quiz
	return nil
}

// Update modifies an existing quiz. When replaceTags is false the stored tag
// set is preserved.
func (r *MockQuizRepository) Update(quiz *models.Quiz, replaceTags bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.quizzes[quiz.ID]
	if !ok {
		return apperrors.NotFound("quiz with ID %s not found for update", quiz.ID)
	}
	if !replaceTags {
		quiz.Tags = stored.Tags
	}
	quiz.UpdatedAt = time.Now()
	r.quizzes[quiz.ID] = *quiz
	return nil
}

// Delete removes a quiz.
func (r *MockQuizRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quizzes[id]; !ok {
		return apperrors.NotFound("quiz with ID %s not found for deletion", id)
	}
	delete(r.quizzes, id)
	return nil
}
