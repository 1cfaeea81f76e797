package handlers

import (
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles HTTP requests for tags, quiz groups and quizzes.
type QuizHandler struct {
	quizService  *services.QuizService
	groupService *services.QuizGroupService
	validate     *validator.Validate
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *services.QuizService, groupService *services.QuizGroupService) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		groupService: groupService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the quiz content routes with the Fiber app.
// Listings and detail views are public; mutations require authentication.
func (h *QuizHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	quizRoutes := router.Group("/quiz")

	quizRoutes.Get("/tag", h.HandleListTags)

	quizRoutes.Get("/quizgroup", h.HandleListGroups)
	quizRoutes.Get("/quizgroup/:id", h.HandleGetGroup)
	quizRoutes.Post("/quizgroup", authRequired, h.HandleCreateGroup)
	quizRoutes.Put("/quizgroup/:id", authRequired, h.HandleUpdateGroup)
	quizRoutes.Delete("/quizgroup/:id", authRequired, h.HandleDeleteGroup)

	quizRoutes.Get("/quiz", h.HandleListQuizzes)
	quizRoutes.Get("/quiz/:id", h.HandleGetQuiz)
	quizRoutes.Post("/quiz", authRequired, h.HandleCreateQuiz)
	quizRoutes.Put("/quiz/:id", authRequired, h.HandleUpdateQuiz)
	quizRoutes.Delete("/quiz/:id", authRequired, h.HandleDeleteQuiz)
}

// HandleListTags lists public tags. Private tags never appear here.
func (h *QuizHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.quizService.ListPublicTags()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// HandleListGroups lists all quiz groups, newest first.
func (h *QuizHandler) HandleListGroups(c *fiber.Ctx) error {
	groups, err := h.groupService.GetAllGroups()
	if err != nil {
		return respondError(c, err)
	}
	views := make([]models.QuizGroupView, 0, len(groups))
	for i := range groups {
		views = append(views, groups[i].View())
	}
	return c.JSON(views)
}

// HandleGetGroup returns a single quiz group.
func (h *QuizHandler) HandleGetGroup(c *fiber.Ctx) error {
	group, err := h.groupService.GetGroupByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group.View())
}

// HandleCreateGroup creates a quiz group owned by the caller.
func (h *QuizHandler) HandleCreateGroup(c *fiber.Ctx) error {
	var req models.QuizGroupCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	group, err := h.groupService.CreateGroup(currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Quiz group created successfully",
		"quiz_group": group.View(),
	})
}

// HandleUpdateGroup updates a quiz group with merge semantics.
func (h *QuizHandler) HandleUpdateGroup(c *fiber.Ctx) error {
	var req models.QuizGroupUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	group, err := h.groupService.UpdateGroup(currentUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Quiz group updated successfully",
		"quiz_group": group.View(),
	})
}

// HandleDeleteGroup deletes a quiz group, detaching its quizzes.
func (h *QuizHandler) HandleDeleteGroup(c *fiber.Ctx) error {
	if err := h.groupService.DeleteGroup(currentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Quiz group deleted successfully",
	})
}

// HandleListQuizzes lists all quizzes, newest first.
func (h *QuizHandler) HandleListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.GetAllQuizzes()
	if err != nil {
		return respondError(c, err)
	}
	views := make([]models.QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, quizzes[i].View())
	}
	return c.JSON(views)
}

// HandleGetQuiz returns a single quiz.
func (h *QuizHandler) HandleGetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuizByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quiz.View())
}

// HandleCreateQuiz creates a quiz owned by the caller.
func (h *QuizHandler) HandleCreateQuiz(c *fiber.Ctx) error {
	var req models.QuizCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	quiz, err := h.quizService.CreateQuiz(currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"quiz":    quiz.View(),
	})
}

// HandleUpdateQuiz updates a quiz; a supplied tag set replaces the stored one.
func (h *QuizHandler) HandleUpdateQuiz(c *fiber.Ctx) error {
	var req models.QuizUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	quiz, err := h.quizService.UpdateQuiz(currentUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Quiz updated successfully",
		"quiz":    quiz.View(),
	})
}

// HandleDeleteQuiz deletes a quiz.
func (h *QuizHandler) HandleDeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(currentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Quiz deleted successfully",
	})
}
