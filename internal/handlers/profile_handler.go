package handlers

import (
	"errors"
	"log"
	"strings"

	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile.
type ProfileHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app. The routes
// must sit behind the JWT middleware.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Delete("/", h.HandleDeleteAccount)
}

func userIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// HandleGetProfile returns the full profile of the authenticated user.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(userIDFromContext(c))
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return respond(c, fiber.StatusNotFound, "Profile not found", nil)
	}
	return respond(c, fiber.StatusOK, "Profile fetched successfully.", user)
}

// HandleUpdateProfile applies a partial profile update.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Validation failed", validationErrorMap(err))
	}

	user, err := h.authService.UpdateProfile(userIDFromContext(c), &req)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		if errors.Is(err, services.ErrValidation) || strings.Contains(err.Error(), "already registered") {
			return respond(c, fiber.StatusBadRequest, "Something went wrong", err.Error())
		}
		if strings.Contains(err.Error(), "not found") {
			return respond(c, fiber.StatusNotFound, "Profile not found", nil)
		}
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Profile updated successfully.", user)
}

// HandleDeleteAccount removes the authenticated user's account and its
// retailer detail.
func (h *ProfileHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(userIDFromContext(c)); err != nil {
		log.Printf("Error deleting account: %v", err)
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}
	return respond(c, fiber.StatusOK, "Account deleted successfully.", nil)
}
