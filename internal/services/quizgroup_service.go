package services

import (
	"log"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/repositories"
	"github.com/arcsino/quizquartz-backend/pkg/rabbitmq"

	"github.com/google/uuid"
)

// QuizGroupService handles business logic for quiz groups.
type QuizGroupService struct {
	groupRepo repositories.QuizGroupRepository
	mqClient  *rabbitmq.Client
}

// NewQuizGroupService creates a new QuizGroupService. mqClient may be nil.
func NewQuizGroupService(groupRepo repositories.QuizGroupRepository, mqClient *rabbitmq.Client) *QuizGroupService {
	return &QuizGroupService{
		groupRepo: groupRepo,
		mqClient:  mqClient,
	}
}

// GetAllGroups retrieves all quiz groups, newest first.
func (s *QuizGroupService) GetAllGroups() ([]models.QuizGroup, error) {
	return s.groupRepo.GetAll()
}

// GetGroupByID retrieves a single quiz group.
func (s *QuizGroupService) GetGroupByID(id string) (*models.QuizGroup, error) {
	return s.groupRepo.GetByID(id)
}

// CreateGroup creates a quiz group owned by the caller. Titles are unique
// across all users.
func (s *QuizGroupService) CreateGroup(user *models.User, req models.QuizGroupCreateRequest) (*models.QuizGroup, error) {
	taken, err := s.groupRepo.TitleTaken(req.Title, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Validation("quiz group title '%s' is already taken by another user", req.Title)
	}

	group := &models.QuizGroup{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		CreatedByID: user.ID,
		CreatedBy:   *user,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishEvent("quizgroup.created", map[string]any{
			"groupID": group.ID,
			"title":   group.Title,
			"userID":  user.ID,
		}); err != nil {
			log.Printf("Warning: Failed to publish quizgroup.created event for group %s: %v", group.ID, err)
		}
	}
	return group, nil
}

// UpdateGroup applies merge semantics: fields omitted from the request keep
// their previous values. Only the owner may update.
func (s *QuizGroupService) UpdateGroup(user *models.User, id string, req models.QuizGroupUpdateRequest) (*models.QuizGroup, error) {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(group, user.ID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		taken, err := s.groupRepo.TitleTaken(*req.Title, group.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Validation("quiz group title '%s' is already taken by another user", *req.Title)
		}
		group.Title = *req.Title
	}
	if req.Subtitle != nil {
		group.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.groupRepo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes the group; member quizzes are detached, not deleted.
// Only the owner may delete.
func (s *QuizGroupService) DeleteGroup(user *models.User, id string) error {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := requireOwner(group, user.ID); err != nil {
		return err
	}
	return s.groupRepo.Delete(id)
}
