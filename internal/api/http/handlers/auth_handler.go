package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/service"
	"github.com/spec-kit/lead-service/pkg/util"
)

// AuthHandler manages the login endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
//
// This route writes its own error bodies under the "message" key, unlike
// the forms routes which use "error" via the error middleware. Dashboards
// consuming the API rely on that shape.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	userID, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		domainErr := util.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
	}

	return c.JSON(dto.LoginResponse{Message: "Login successful", UserID: userID})
}
