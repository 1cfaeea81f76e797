package repositories

import "github.com/arcsino/quizquartz-backend/internal/models"

// QuizGroupRepository defines the interface for quiz group data access.
type QuizGroupRepository interface {
	// GetAll returns all groups, most recently created first.
	GetAll() ([]models.QuizGroup, error)
	GetByID(id string) (*models.QuizGroup, error)
	Create(group *models.QuizGroup) error
	Update(group *models.QuizGroup) error
	// Delete removes the group; quizzes keep their rows and lose only the
	// group reference.
	Delete(id string) error
	// TitleTaken reports whether a group other than excludeID holds the title.
	TitleTaken(title, excludeID string) (bool, error)
}
