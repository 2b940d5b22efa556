package repository

import (
	"context"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// WarehouseStock un nivel de stock junto con los datos de su bodega,
// para incrustarlo en las respuestas de producto.
type WarehouseStock struct {
	Level         *entity.StockLevel
	WarehouseName string
	WarehouseCode string
}

// Levels extrae los StockLevel de un slice de WarehouseStock
// (entrada del agregador puro del paquete stock).
func Levels(ws []WarehouseStock) []*entity.StockLevel {
	out := make([]*entity.StockLevel, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Level)
	}
	return out
}

// StockLevelRepository consultas de solo lectura sobre stock_levels.
// warehouseID vacío = sin restricción de bodega.
type StockLevelRepository interface {
	ListByProduct(ctx context.Context, productID, warehouseID string) ([]WarehouseStock, error)
	// ListByProducts agrupa por producto los niveles (visibles) de varios
	// productos en una sola consulta.
	ListByProducts(ctx context.Context, productIDs []string, warehouseID string) (map[string][]WarehouseStock, error)
	// ProductHasAvailable indica si el producto tiene alguna fila con
	// available_qty > 0 (bloquea su eliminación).
	ProductHasAvailable(ctx context.Context, productID string) (bool, error)
	// WarehouseHasAvailable indica si la bodega tiene alguna fila con
	// available_qty > 0 (bloquea su eliminación).
	WarehouseHasAvailable(ctx context.Context, warehouseID string) (bool, error)
}
