package handlers

import (
	"errors"

	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	responder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger zerolog.Logger, exposeDetails bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		responder: responder{
			logger:        logger.With().Str("handler", "auth").Logger(),
			exposeDetails: exposeDetails,
		},
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return h.badBody(c, err)
	}
	user.ID = ""

	if err := h.authService.RegisterUser(&user); err != nil {
		return h.fail(c, "auth/register", err)
	}

	// Never return the password hash
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks the credentials and issues a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c, err)
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Warn().Str("username", req.Username).Msg("login failed")
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error:   models.ErrCodeUnauthorized,
				Message: "Authentication failed",
			})
		}
		return h.fail(c, "auth/login", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
