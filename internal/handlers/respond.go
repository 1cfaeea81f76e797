package handlers

import (
	"fmt"
	"log"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/middleware"
	"github.com/arcsino/quizquartz-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to its HTTP status and a display body.
// Internal details never leak to the caller.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": apperrors.DisplayMessage(err),
	})
}

// respondValidationErrors renders field-level failures from the request
// boundary validator.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondBadBody renders a body-parse failure.
func respondBadBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// currentUser returns the authenticated user placed in locals by the auth
// middleware. Only call from handlers behind AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	return c.Locals(middleware.UserKey).(*models.User)
}

// currentTokenKey returns the bearer token key of the request.
func currentTokenKey(c *fiber.Ctx) string {
	return c.Locals(middleware.TokenKeyKey).(string)
}
