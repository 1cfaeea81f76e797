package services_test

import (
	"testing"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/repositories"
	"github.com/arcsino/quizquartz-backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type quizFixture struct {
	quizService  *services.QuizService
	groupService *services.QuizGroupService
	tagRepo      *repositories.MockTagRepository
	alice        *models.User
	bob          *models.User
	mathTag      models.Tag
	privateTag   models.Tag
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()

	quizRepo := repositories.NewMockQuizRepository()
	tagRepo := repositories.NewMockTagRepository()
	groupRepo := repositories.NewMockQuizGroupRepository()

	f := &quizFixture{
		quizService:  services.NewQuizService(quizRepo, tagRepo, groupRepo, nil),
		groupService: services.NewQuizGroupService(groupRepo, nil),
		tagRepo:      tagRepo,
		alice:        &models.User{ID: uuid.New().String(), Nickname: "ali"},
		bob:          &models.User{ID: uuid.New().String(), Nickname: "bobby"},
		mathTag:      models.Tag{ID: uuid.New().String(), Name: "math"},
		privateTag:   models.Tag{ID: uuid.New().String(), Name: "secret", IsPrivate: true},
	}
	assert.NoError(t, tagRepo.Create(&f.mathTag))
	assert.NoError(t, tagRepo.Create(&f.privateTag))
	return f
}

func TestQuizService_CreateQuiz(t *testing.T) {
	f := newQuizFixture(t)

	quiz, err := f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "What is 2+2?",
		Answer:   models.JSON(`{"value": "4"}`),
		Tags:     []string{f.mathTag.ID},
	})
	assert.NoError(t, err)
	assert.False(t, quiz.IsChecked)
	assert.Equal(t, f.alice.ID, quiz.CreatedByID)
	assert.Len(t, quiz.Tags, 1)
	assert.Equal(t, "math", quiz.Tags[0].Name)
}

func TestQuizService_CreateQuiz_TagValidation(t *testing.T) {
	f := newQuizFixture(t)

	// Malformed tag id
	_, err := f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), Tags: []string{"not-a-uuid"},
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "invalid tag ID format")

	// Well-formed but unknown tag id
	_, err = f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), Tags: []string{uuid.New().String()},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	// Private tags are rejected even when mixed with public ones
	_, err = f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), Tags: []string{f.mathTag.ID, f.privateTag.ID},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "private tag")
}

func TestQuizService_CreateQuiz_GroupValidation(t *testing.T) {
	f := newQuizFixture(t)

	bobGroup, err := f.groupService.CreateGroup(f.bob, models.QuizGroupCreateRequest{Title: "Bob's group"})
	assert.NoError(t, err)

	// Another user's group is forbidden
	_, err = f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), RelatedGroup: &bobGroup.ID,
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	// A nonexistent group reads as not found
	missingID := uuid.New().String()
	_, err = f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), RelatedGroup: &missingID,
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	// The caller's own group works
	aliceGroup, err := f.groupService.CreateGroup(f.alice, models.QuizGroupCreateRequest{Title: "Alice's group"})
	assert.NoError(t, err)
	quiz, err := f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`), RelatedGroup: &aliceGroup.ID,
	})
	assert.NoError(t, err)
	assert.NotNil(t, quiz.RelatedGroupID)
	assert.Equal(t, aliceGroup.ID, *quiz.RelatedGroupID)
}

func TestQuizService_UpdateQuiz(t *testing.T) {
	f := newQuizFixture(t)

	quiz, err := f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "original?",
		Answer:   models.JSON(`"a"`),
		Tags:     []string{f.mathTag.ID},
	})
	assert.NoError(t, err)

	// Omitting tags preserves the stored associations
	newQuestion := "revised?"
	updated, err := f.quizService.UpdateQuiz(f.alice, quiz.ID, models.QuizUpdateRequest{
		Question: &newQuestion,
	})
	assert.NoError(t, err)
	assert.Equal(t, "revised?", updated.Question)
	assert.Len(t, updated.Tags, 1)

	// An explicit empty tag list clears them
	empty := []string{}
	updated, err = f.quizService.UpdateQuiz(f.alice, quiz.ID, models.QuizUpdateRequest{
		Tags: &empty,
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Tags, 0)

	// A private tag in the replacement set rejects the update before any write
	bad := []string{f.privateTag.ID}
	_, err = f.quizService.UpdateQuiz(f.alice, quiz.ID, models.QuizUpdateRequest{Tags: &bad})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Only the owner may update
	_, err = f.quizService.UpdateQuiz(f.bob, quiz.ID, models.QuizUpdateRequest{Question: &newQuestion})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestQuizService_DeleteQuiz(t *testing.T) {
	f := newQuizFixture(t)

	quiz, err := f.quizService.CreateQuiz(f.alice, models.QuizCreateRequest{
		Question: "q", Answer: models.JSON(`"a"`),
	})
	assert.NoError(t, err)

	err = f.quizService.DeleteQuiz(f.bob, quiz.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	err = f.quizService.DeleteQuiz(f.alice, quiz.ID)
	assert.NoError(t, err)

	_, err = f.quizService.GetQuizByID(quiz.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestQuizService_ListPublicTags(t *testing.T) {
	f := newQuizFixture(t)

	tags, err := f.quizService.ListPublicTags()
	assert.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, "math", tags[0].Name)
}
