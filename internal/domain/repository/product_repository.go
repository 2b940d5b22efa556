package repository

import (
	"context"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// ProductFilter filtros y paginación para el listado de productos.
type ProductFilter struct {
	Search      string // substring case-insensitive sobre name, sku y barcode
	CategoryID  string
	Status      string // el caso de uso aplica "active" por defecto
	WarehouseID string // alcance de bodega: exige stock registrado en ella
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// List devuelve la página ordenada por nombre y el total sin paginar.
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
}
