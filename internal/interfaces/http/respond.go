package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
)

// respondData envuelve una respuesta exitosa en el sobre común.
func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data})
}

// respondMessage responde éxito con solo un mensaje.
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(dto.Envelope{Success: true, Message: message})
}

// respondError traduce los errores de dominio a códigos HTTP en un único
// punto. Los handlers nunca eligen códigos por su cuenta.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Envelope{
			Success: false,
			Message: "Los datos proporcionados no son válidos",
			Errors:  ve.Fields,
		})
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Envelope{
			Success: false,
			Message: ce.Message,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{
			Success: false, Message: "recurso no encontrado",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
			Success: false, Message: "no tienes permiso para realizar esta acción",
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{
			Success: false, Message: "credenciales inválidas",
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Envelope{
			Success: false, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{
			Success: false, Error: "error interno del servidor",
		})
	}
}

// respondBadBody responde 400 ante un cuerpo que no parsea.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
		Success: false, Message: "cuerpo de la petición inválido",
	})
}
