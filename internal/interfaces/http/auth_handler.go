package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-api/internal/application/auth"
	"github.com/invorya/inventario-api/internal/application/dto"
)

// AuthHandler maneja login, logout y el usuario actual.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login responde POST /api/auth/login (público).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Logout responde POST /api/auth/logout. Los JWT son stateless: el cliente
// descarta el token y el server solo confirma.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return respondMessage(c, "sesión cerrada")
}

// CurrentUser responde GET /api/auth/user.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	out, err := h.uc.CurrentUser(c.UserContext(), GetActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, out)
}
