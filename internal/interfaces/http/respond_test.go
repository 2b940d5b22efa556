package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
)

// appFor registra una ruta que siempre responde el error dado.
func appFor(err error) *fiber.App {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func get(t *testing.T, app *fiber.App) (*http.Response, dto.Envelope) {
	t.Helper()
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env
}

func TestRespondError_Validacion422ConErroresPorCampo(t *testing.T) {
	ve := domain.NewValidationError("name", "el nombre es obligatorio")
	ve.Add("parent_id", "debe ser un uuid válido")

	resp, env := get(t, appFor(ve))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Los datos proporcionados no son válidos", env.Message)
	assert.Equal(t, []string{"el nombre es obligatorio"}, env.Errors["name"])
	assert.Equal(t, []string{"debe ser un uuid válido"}, env.Errors["parent_id"])
}

func TestRespondError_Conflicto422ConMensaje(t *testing.T) {
	err := &domain.ConflictError{Message: "no se puede eliminar una categoría con productos"}

	resp, env := get(t, appFor(err))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "no se puede eliminar una categoría con productos", env.Message)
	assert.Nil(t, env.Errors)
}

func TestRespondError_NoEncontrado404(t *testing.T) {
	resp, env := get(t, appFor(domain.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestRespondError_Prohibido403(t *testing.T) {
	resp, _ := get(t, appFor(domain.ErrForbidden))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRespondError_NoAutorizado401(t *testing.T) {
	resp, _ := get(t, appFor(domain.ErrUnauthorized))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRespondError_Interno500SinDetalles(t *testing.T) {
	resp, env := get(t, appFor(assert.AnError))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "error interno del servidor", env.Error)
	assert.NotContains(t, env.Error, assert.AnError.Error(), "los detalles internos no se filtran al cliente")
}

func TestRespondData_Sobre(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondData(c, fiber.StatusCreated, fiber.Map{"id": "abc"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, "abc", data["id"])
}
