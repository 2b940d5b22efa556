package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountActiveProducts cuenta los productos activos.
func (r *DashboardRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.countActive(ctx, "products")
}

// CountActiveWarehouses cuenta las bodegas activas.
func (r *DashboardRepo) CountActiveWarehouses(ctx context.Context) (int, error) {
	return r.countActive(ctx, "warehouses")
}

func (r *DashboardRepo) countActive(ctx context.Context, table string) (int, error) {
	var n int
	query := `SELECT count(*) FROM ` + table + ` WHERE status = $1`
	if err := r.q.QueryRow(ctx, query, entity.StatusActive).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active %s: %w", table, err)
	}
	return n, nil
}

// CountRecentActiveProducts cuenta los productos activos creados desde `since`.
func (r *DashboardRepo) CountRecentActiveProducts(ctx context.Context, since time.Time) (int, error) {
	var n int
	query := `SELECT count(*) FROM products WHERE status = $1 AND created_at >= $2`
	if err := r.q.QueryRow(ctx, query, entity.StatusActive, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recent products: %w", err)
	}
	return n, nil
}

// StockValue suma available_qty * cost_price sobre las filas de stock
// visibles. Incluye productos inactivos: es el valor contable del inventario.
func (r *DashboardRepo) StockValue(ctx context.Context, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(sum(s.available_qty * p.cost_price), 0)
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id`
	args := []any{}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += " WHERE s.warehouse_id = $1"
	}
	var value decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return value, nil
}

// ListActiveProductStock devuelve los productos activos en orden de creación
// con su disponible sumado dentro del alcance.
func (r *DashboardRepo) ListActiveProductStock(ctx context.Context, warehouseID string) ([]repository.ProductStockRow, error) {
	query := `
		SELECT p.id, p.name, p.sku, COALESCE(c.name, ''), p.reorder_level, p.cost_price,
		       COALESCE(sum(s.available_qty), 0), p.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN stock_levels s ON s.product_id = p.id`
	args := []any{entity.StatusActive}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += " AND s.warehouse_id = $2"
	}
	query += `
		WHERE p.status = $1
		GROUP BY p.id, p.name, p.sku, c.name, p.reorder_level, p.cost_price, p.created_at
		ORDER BY p.created_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product stock: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductStockRow
	for rows.Next() {
		var row repository.ProductStockRow
		err := rows.Scan(
			&row.ID, &row.Name, &row.SKU, &row.CategoryName, &row.ReorderLevel,
			&row.CostPrice, &row.Available, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
