package services

import (
	"log"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/repositories"
	"github.com/arcsino/quizquartz-backend/internal/validation"
	"github.com/arcsino/quizquartz-backend/pkg/rabbitmq"

	"github.com/google/uuid"
)

// QuizService handles business logic for quizzes and public tag listings.
type QuizService struct {
	quizRepo  repositories.QuizRepository
	tagRepo   repositories.TagRepository
	groupRepo repositories.QuizGroupRepository
	mqClient  *rabbitmq.Client
}

// NewQuizService creates a new QuizService. mqClient may be nil.
func NewQuizService(quizRepo repositories.QuizRepository, tagRepo repositories.TagRepository, groupRepo repositories.QuizGroupRepository, mqClient *rabbitmq.Client) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		tagRepo:   tagRepo,
		groupRepo: groupRepo,
		mqClient:  mqClient,
	}
}

// ListPublicTags returns all non-private tags.
func (s *QuizService) ListPublicTags() ([]models.Tag, error) {
	return s.tagRepo.ListPublic()
}

// GetAllQuizzes retrieves all quizzes, newest first.
func (s *QuizService) GetAllQuizzes() ([]models.Quiz, error) {
	return s.quizRepo.GetAll()
}

// GetQuizByID retrieves a single quiz.
func (s *QuizService) GetQuizByID(id string) (*models.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// resolveTags validates every tag id before any mutation: syntax, existence,
// then the private flag. Any violation rejects the whole set.
func (s *QuizService) resolveTags(ids []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		if !validation.ValidTagID(id) {
			return nil, apperrors.Validation("invalid tag ID format: %s", id)
		}
		tag, err := s.tagRepo.GetByID(id)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, apperrors.Validation("a tag that does not exist is included")
			}
			return nil, err
		}
		if tag.IsPrivate {
			return nil, apperrors.Validation("a private tag is included")
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// resolveGroup checks that the referenced group exists and belongs to the
// caller. A missing group reads as not-found; a foreign one as forbidden.
func (s *QuizService) resolveGroup(groupID, userID string) (*models.QuizGroup, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID() != userID {
		return nil, apperrors.Forbidden("you do not have permission to add quizzes to this quiz group")
	}
	return group, nil
}

// CreateQuiz creates a quiz owned by the caller with checked=false. Tag and
// group references are fully validated before the quiz row is written.
func (s *QuizService) CreateQuiz(user *models.User, req models.QuizCreateRequest) (*models.Quiz, error) {
	tags, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:          uuid.New().String(),
		Question:    req.Question,
		Answer:      req.Answer,
		Tags:        tags,
		IsChecked:   false,
		CreatedByID: user.ID,
		CreatedBy:   *user,
	}
	if req.RelatedGroup != nil {
		group, err := s.resolveGroup(*req.RelatedGroup, user.ID)
		if err != nil {
			return nil, err
		}
		quiz.RelatedGroupID = &group.ID
		quiz.RelatedGroup = group
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishEvent("quiz.created", map[string]any{
			"quizID": quiz.ID,
			"userID": user.ID,
		}); err != nil {
			log.Printf("Warning: Failed to publish quiz.created event for quiz %s: %v", quiz.ID, err)
		}
	}
	return quiz, nil
}

// UpdateQuiz applies merge semantics for question, answer and group
// reference. A supplied tag set replaces the stored one in full; an omitted
// tag field leaves the associations untouched. Only the owner may update, and
// all reference validation runs against the proposed values before any field
// is written.
func (s *QuizService) UpdateQuiz(user *models.User, id string, req models.QuizUpdateRequest) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(quiz, user.ID); err != nil {
		return nil, err
	}

	replaceTags := req.Tags != nil
	if replaceTags {
		tags, err := s.resolveTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		quiz.Tags = tags
	}
	if req.RelatedGroup != nil {
		group, err := s.resolveGroup(*req.RelatedGroup, user.ID)
		if err != nil {
			return nil, err
		}
		quiz.RelatedGroupID = &group.ID
		quiz.RelatedGroup = group
	}
	if req.Question != nil {
		quiz.Question = *req.Question
	}
	if len(req.Answer) > 0 {
		quiz.Answer = req.Answer
	}

	if err := s.quizRepo.Update(quiz, replaceTags); err != nil {
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz removes the quiz. Only the owner may delete.
func (s *QuizService) DeleteQuiz(user *models.User, id string) error {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := requireOwner(quiz, user.ID); err != nil {
		return err
	}
	if err := s.quizRepo.Delete(id); err != nil {
		return err
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishEvent("quiz.deleted", map[string]any{
			"quizID": id,
			"userID": user.ID,
		}); err != nil {
			log.Printf("Warning: Failed to publish quiz.deleted event for quiz %s: %v", id, err)
		}
	}
	return nil
}
