package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-api/internal/application/reports"
)

// ReportHandler maneja los reportes (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock responde GET /api/reports/low-stock.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// LowStockPDF responde GET /api/reports/low-stock/pdf con el PDF adjunto.
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	out, err := h.uc.LowStockPDF(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-stock-bajo.pdf"`)
	return c.Send(out)
}
