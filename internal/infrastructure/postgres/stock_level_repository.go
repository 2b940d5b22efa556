package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL.
// Solo lectura: los ajustes de stock llegan por otro canal.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// ListByProduct lista los niveles de stock de un producto con su bodega.
// warehouseID vacío = sin restricción de bodega.
func (r *StockLevelRepo) ListByProduct(ctx context.Context, productID, warehouseID string) ([]repository.WarehouseStock, error) {
	grouped, err := r.ListByProducts(ctx, []string{productID}, warehouseID)
	if err != nil {
		return nil, err
	}
	return grouped[productID], nil
}

// ListByProducts agrupa por producto los niveles de varios productos en una
// sola consulta.
func (r *StockLevelRepo) ListByProducts(ctx context.Context, productIDs []string, warehouseID string) (map[string][]repository.WarehouseStock, error) {
	if len(productIDs) == 0 {
		return map[string][]repository.WarehouseStock{}, nil
	}
	query := `
		SELECT s.id, s.product_id, s.warehouse_id, s.available_qty, s.reserved_qty, s.updated_at,
		       w.name, w.code
		FROM stock_levels s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.product_id = ANY($1)`
	args := []any{productIDs}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += " AND s.warehouse_id = $2"
	}
	query += " ORDER BY w.name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	grouped := map[string][]repository.WarehouseStock{}
	for rows.Next() {
		var level entity.StockLevel
		var ws repository.WarehouseStock
		err := rows.Scan(
			&level.ID, &level.ProductID, &level.WarehouseID,
			&level.AvailableQty, &level.ReservedQty, &level.UpdatedAt,
			&ws.WarehouseName, &ws.WarehouseCode,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		ws.Level = &level
		grouped[level.ProductID] = append(grouped[level.ProductID], ws)
	}
	return grouped, rows.Err()
}

// ProductHasAvailable indica si el producto tiene stock disponible en alguna bodega.
func (r *StockLevelRepo) ProductHasAvailable(ctx context.Context, productID string) (bool, error) {
	return r.hasAvailable(ctx, "product_id", productID)
}

// WarehouseHasAvailable indica si la bodega tiene alguna fila con stock disponible.
func (r *StockLevelRepo) WarehouseHasAvailable(ctx context.Context, warehouseID string) (bool, error) {
	return r.hasAvailable(ctx, "warehouse_id", warehouseID)
}

func (r *StockLevelRepo) hasAvailable(ctx context.Context, column, value string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_levels WHERE ` + column + ` = $1 AND available_qty > 0)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("check available stock by %s: %w", column, err)
	}
	return exists, nil
}
