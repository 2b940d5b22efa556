// Package analytics implementa las consultas agregadas del dashboard.
// Las estadísticas se calculan en paralelo: cada bloque es una consulta
// independiente de solo lectura.
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

// Ventana de "productos recientes" del dashboard.
const recentWindow = 7 * 24 * time.Hour

// Etiqueta del grupo de productos sin categoría en el gráfico.
const uncategorizedLabel = "Uncategorized"

// Cuántos productos con stock bajo se listan en el widget.
const lowStockWidgetSize = 5

// DashboardUseCase arma las estadísticas y el gráfico stock-por-categoría.
// Todas las cifras respetan el alcance de bodega del actor.
type DashboardUseCase struct {
	repo    repository.DashboardRepository
	checker access.Checker
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, checker access.Checker) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, checker: checker, now: time.Now}
}

// Stats calcula las cifras del dashboard. total_warehouses se reporta como 0
// explícito cuando el actor no puede ver bodegas; el valor total de stock se
// redondea a 2 decimales.
func (uc *DashboardUseCase) Stats(ctx context.Context, actor access.Actor) (*dto.DashboardStatsDTO, error) {
	if !uc.checker.Can(actor.Role, access.PermDashboardView) {
		return nil, domain.ErrForbidden
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		firstErr   error
		products   int
		warehouses int
		recent     int
		value      decimal.Decimal
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		n, err := uc.repo.CountActiveProducts(ctx)
		if err != nil {
			fail(err)
			return
		}
		products = n
	}()
	go func() {
		defer wg.Done()
		if !uc.checker.Can(actor.Role, access.PermWarehouseView) {
			return
		}
		n, err := uc.repo.CountActiveWarehouses(ctx)
		if err != nil {
			fail(err)
			return
		}
		warehouses = n
	}()
	go func() {
		defer wg.Done()
		n, err := uc.repo.CountRecentActiveProducts(ctx, uc.now().Add(-recentWindow))
		if err != nil {
			fail(err)
			return
		}
		recent = n
	}()
	go func() {
		defer wg.Done()
		v, err := uc.repo.StockValue(ctx, actor.WarehouseID)
		if err != nil {
			fail(err)
			return
		}
		value = v
	}()
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	// El listado de stock por producto alimenta tres cifras a la vez,
	// por eso va fuera del abanico anterior.
	rows, err := uc.repo.ListActiveProductStock(ctx, actor.WarehouseID)
	if err != nil {
		return nil, err
	}

	lowCount := 0
	outCount := 0
	lowProducts := make([]dto.LowStockProductDTO, 0, lowStockWidgetSize)
	for _, row := range rows {
		if row.Available == 0 {
			outCount++
			continue
		}
		if row.Available <= row.ReorderLevel {
			lowCount++
			if len(lowProducts) < lowStockWidgetSize {
				lowProducts = append(lowProducts, dto.LowStockProductDTO{
					ID:           row.ID,
					Name:         row.Name,
					SKU:          row.SKU,
					CurrentStock: row.Available,
					ReorderLevel: row.ReorderLevel,
				})
			}
		}
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:    products,
		TotalWarehouses:  warehouses,
		TotalStockValue:  value.Round(2),
		LowStockCount:    lowCount,
		OutOfStockCount:  outCount,
		RecentProducts:   recent,
		LowStockProducts: lowProducts,
	}, nil
}

// StockChart agrupa el disponible de los productos activos por nombre de
// categoría; los productos sin categoría caen en el grupo "Uncategorized".
func (uc *DashboardUseCase) StockChart(ctx context.Context, actor access.Actor) ([]dto.StockChartItemDTO, error) {
	if !uc.checker.Can(actor.Role, access.PermDashboardView) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.repo.ListActiveProductStock(ctx, actor.WarehouseID)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	for _, row := range rows {
		name := row.CategoryName
		if name == "" {
			name = uncategorizedLabel
		}
		totals[name] += row.Available
	}

	out := make([]dto.StockChartItemDTO, 0, len(totals))
	for name, count := range totals {
		out = append(out, dto.StockChartItemDTO{Category: name, StockCount: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StockCount != out[j].StockCount {
			return out[i].StockCount > out[j].StockCount
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
