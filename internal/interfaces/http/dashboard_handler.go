package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-api/internal/application/analytics"
)

// DashboardHandler maneja las peticiones del dashboard (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats responde GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// StockChart responde GET /api/dashboard/stock-chart.
func (h *DashboardHandler) StockChart(c *fiber.Ctx) error {
	out, err := h.uc.StockChart(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, out)
}
