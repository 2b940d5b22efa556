// Package reports implementa el reporte de stock bajo, consultable como JSON
// y exportable a PDF.
package reports

import (
	"context"
	"time"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

// LowStockItem una fila del reporte: producto activo cuyo disponible está
// en (0, reorder_level].
type LowStockItem struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
}

// LowStockReport el reporte completo con su momento de corte.
type LowStockReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Scope       string         `json:"warehouse_id,omitempty"`
	Items       []LowStockItem `json:"items"`
}

// PDFGenerator renderiza el reporte a PDF. Vive en infraestructura.
type PDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, report *LowStockReport) ([]byte, error)
}

// UseCase arma el reporte de stock bajo respetando el alcance de bodega.
type UseCase struct {
	repo    repository.DashboardRepository
	pdf     PDFGenerator
	checker access.Checker
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DashboardRepository, pdf PDFGenerator, checker access.Checker) *UseCase {
	return &UseCase{repo: repo, pdf: pdf, checker: checker, now: time.Now}
}

// LowStock devuelve el reporte completo, sin truncar, en orden de creación
// de los productos.
func (uc *UseCase) LowStock(ctx context.Context, actor access.Actor) (*LowStockReport, error) {
	if !uc.checker.Can(actor.Role, access.PermReportsView) {
		return nil, domain.ErrForbidden
	}
	return uc.build(ctx, actor)
}

// LowStockPDF genera el reporte en PDF. Exportar exige un permiso distinto
// a consultarlo.
func (uc *UseCase) LowStockPDF(ctx context.Context, actor access.Actor) ([]byte, error) {
	if !uc.checker.Can(actor.Role, access.PermReportsExport) {
		return nil, domain.ErrForbidden
	}
	report, err := uc.build(ctx, actor)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLowStockPDF(ctx, report)
}

func (uc *UseCase) build(ctx context.Context, actor access.Actor) (*LowStockReport, error) {
	rows, err := uc.repo.ListActiveProductStock(ctx, actor.WarehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0)
	for _, row := range rows {
		if row.Available == 0 || row.Available > row.ReorderLevel {
			continue
		}
		items = append(items, LowStockItem{
			ProductID:    row.ID,
			Name:         row.Name,
			SKU:          row.SKU,
			Category:     row.CategoryName,
			CurrentStock: row.Available,
			ReorderLevel: row.ReorderLevel,
		})
	}
	return &LowStockReport{
		GeneratedAt: uc.now(),
		Scope:       actor.WarehouseID,
		Items:       items,
	}, nil
}
