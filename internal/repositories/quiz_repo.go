package repositories

import "github.com/arcsino/quizquartz-backend/internal/models"

// QuizRepository defines the interface for quiz data access.
type QuizRepository interface {
	// GetAll returns all quizzes, most recently created first.
	GetAll() ([]models.Quiz, error)
	GetByID(id string) (*models.Quiz, error)
	// Create inserts the quiz and attaches quiz.Tags in the same transaction.
	Create(quiz *models.Quiz) error
	// Update persists quiz fields; when replaceTags is true the stored tag
	// set is replaced with quiz.Tags, otherwise associations are untouched.
	Update(quiz *models.Quiz, replaceTags bool) error
	Delete(id string) error
}
