package handlers

import (
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/registration", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/detail", authRequired, h.HandleDetail)
	authRoutes.Put("/update", authRequired, h.HandleUpdate)
	authRoutes.Patch("/update", authRequired, h.HandleUpdate)
	authRoutes.Put("/password-change", authRequired, h.HandlePasswordChange)
	authRoutes.Post("/logout", authRequired, h.HandleLogout)
	authRoutes.Delete("/delete", authRequired, h.HandleDelete)
}

// HandleRegister handles new user registration.
func (h *AccountHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.service.Register(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": fiber.Map{
			"username": user.Username,
			"email":    user.Email,
			"nickname": user.Nickname,
		},
	})
}

// HandleLogin handles user login and issues a fresh bearer token. Any token
// from a previous session is revoked.
func (h *AccountHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.Profile(),
	})
}

// HandleDetail returns the authenticated user's profile.
func (h *AccountHandler) HandleDetail(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"message": "User detail retrieved successfully",
		"user":    user.Profile(),
	})
}

// HandleUpdate replaces the caller's username, email and nickname. Partial
// bodies are rejected wholesale by the boundary validator.
func (h *AccountHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := currentUser(c)
	if err := h.service.UpdateProfile(user, req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user": fiber.Map{
			"username": user.Username,
			"email":    user.Email,
			"nickname": user.Nickname,
		},
	})
}

// HandlePasswordChange replaces the caller's password hash.
func (h *AccountHandler) HandlePasswordChange(c *fiber.Ctx) error {
	var req models.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.ChangePassword(currentUser(c), req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// HandleLogout revokes the presented token.
func (h *AccountHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.service.Logout(currentTokenKey(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}

// HandleDelete removes the caller's account and everything they own.
func (h *AccountHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteAccount(currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
