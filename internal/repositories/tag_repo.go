package repositories

import "github.com/arcsino/quizquartz-backend/internal/models"

// TagRepository defines the interface for tag data access. Tags have no
// public mutation endpoints; Create exists for out-of-band administration
// and seeding.
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByID(id string) (*models.Tag, error)
	ListPublic() ([]models.Tag, error)
}
