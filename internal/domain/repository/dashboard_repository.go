package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStockRow fila cruda para el dashboard: un producto activo con su
// disponible ya sumado dentro del alcance de bodega solicitado.
type ProductStockRow struct {
	ID           string
	Name         string
	SKU          string
	CategoryName string // vacío si el producto quedó sin categoría
	ReorderLevel int
	CostPrice    decimal.Decimal
	Available    int
	CreatedAt    time.Time
}

// DashboardRepository consultas de solo lectura para el dashboard.
// warehouseID vacío = sin restricción de bodega.
type DashboardRepository interface {
	CountActiveProducts(ctx context.Context) (int, error)
	CountActiveWarehouses(ctx context.Context) (int, error)
	// CountRecentActiveProducts cuenta productos activos creados desde `since`.
	CountRecentActiveProducts(ctx context.Context, since time.Time) (int, error)
	// StockValue suma available_qty * cost_price sobre las filas de stock
	// visibles, incluyendo productos inactivos (paridad con el valor contable).
	StockValue(ctx context.Context, warehouseID string) (decimal.Decimal, error)
	// ListActiveProductStock devuelve los productos activos en orden de
	// creación con su disponible dentro del alcance.
	ListActiveProductStock(ctx context.Context, warehouseID string) ([]ProductStockRow, error)
}
