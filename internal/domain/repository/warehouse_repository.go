package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// WarehouseFilter filtros de listado de bodegas.
type WarehouseFilter struct {
	Search string // substring case-insensitive sobre name, code y location
	Status string // el caso de uso aplica "active" por defecto
}

// WarehouseStats estadísticas de una bodega sobre sus filas con stock
// disponible positivo.
type WarehouseStats struct {
	TotalProducts int
	TotalStock    int
	TotalValue    decimal.Decimal // sum(available_qty * cost_price), sin redondear
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, id string) error

	// List devuelve las bodegas filtradas ordenadas por nombre.
	List(ctx context.Context, f WarehouseFilter) ([]*entity.Warehouse, error)
	Stats(ctx context.Context, id string) (*WarehouseStats, error)
	CountUsers(ctx context.Context, id string) (int, error)
}
