package services

import (
	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
)

// requireOwner is the single ownership check behind every mutation of an
// owned entity. Callers must have resolved the entity first so a missing id
// reads as not-found and a foreign entity reads as forbidden.
func requireOwner(entity models.Owned, userID string) error {
	if entity.OwnerID() != userID {
		return apperrors.Forbidden("you do not have permission to modify this resource")
	}
	return nil
}
