package repositories

import "github.com/arcsino/quizquartz-backend/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	// The *Taken methods report whether a user already holds the value. A
	// non-empty excludeID leaves that user's own row out of the scan.
	UsernameTaken(username, excludeID string) (bool, error)
	EmailTaken(email, excludeID string) (bool, error)
	NicknameTaken(nickname, excludeID string) (bool, error)
	Update(user *models.User) error
	// Delete removes the user and cascades to every quiz and quiz group the
	// user owns. Quizzes referencing a deleted group are detached first.
	Delete(id string) error
}
