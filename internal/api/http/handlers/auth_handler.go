package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nosql-mis/internal/api/dto"
	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/service"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, sessionID, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.Status(http.StatusUnauthorized).JSON(dto.FailureResponse{Success: false, Message: "Invalid credentials"})
	}
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Success: true, SessionID: sessionID, Username: user.Username})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Get(auth.SessionHeader)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
