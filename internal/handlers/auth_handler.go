package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration, login and OTP
// verification.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/verify-otp", h.HandleVerifyOTP)
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if field := checkEmptyFields(raw); field != "" {
		return respond(c, fiber.StatusNotAcceptable, "Validation error", fiber.Map{
			field: "This field may not be empty.",
		})
	}

	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Validation failed", validationErrorMap(err))
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		if errors.Is(err, services.ErrValidation) {
			return respond(c, fiber.StatusNotAcceptable, "Validation error", err.Error())
		}
		if strings.Contains(err.Error(), "already taken") || strings.Contains(err.Error(), "already registered") {
			return respond(c, fiber.StatusBadRequest, "Something went wrong", err.Error())
		}
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Registration successfully done.", user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	IsCustomer bool   `json:"is_customer"`
	IsRetailer bool   `json:"is_retailer"`
}

// HandleLogin runs the role-aware login decision and issues a token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return respond(c, fiber.StatusNotAcceptable, "Validation error", validationErrorMap(err))
	}

	// The requested-role flag routes to exactly one branch.
	var role models.Role
	switch {
	case req.IsRetailer:
		role = models.RoleRetailer
	case req.IsCustomer:
		role = models.RoleCustomer
	}

	result, err := h.authService.Login(req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleRequired):
			return respond(c, fiber.StatusNotAcceptable, "Validation error", err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			return respond(c, fiber.StatusNotFound, "Invalid Email or Password", nil)
		case errors.Is(err, services.ErrVerificationNeeded):
			return respond(c, fiber.StatusForbidden,
				"Account verification needed. An OTP has been sent to your email.",
				fiber.Map{"email": req.Email})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Login Success", result)
}

// VerifyOTPRequest represents the request body for OTP verification.
type VerifyOTPRequest struct {
	Email      string `json:"email" validate:"required"`
	OTP        int    `json:"otp" validate:"required"`
	IsRetailer bool   `json:"is_retailer"`
}

// HandleVerifyOTP validates a submitted code and grants the pending role.
func (h *AuthHandler) HandleVerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify-otp request body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return respond(c, fiber.StatusNotAcceptable, "Validation error", validationErrorMap(err))
	}

	var roleHint models.Role
	if req.IsRetailer {
		roleHint = models.RoleRetailer
	}

	user, err := h.authService.VerifyOTP(req.Email, req.OTP, roleHint)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUser):
			return respond(c, fiber.StatusBadRequest, "Invalid user", nil)
		case errors.Is(err, services.ErrInvalidCode), errors.Is(err, services.ErrCodeExpired):
			return respond(c, fiber.StatusBadRequest, "Invalid OTP", err.Error())
		}
		log.Printf("Error during OTP verification for %s: %v", req.Email, err)
		return respond(c, fiber.StatusInternalServerError, "An error occurred", err.Error())
	}

	return respond(c, fiber.StatusOK, "Account verified successfully.", user)
}
