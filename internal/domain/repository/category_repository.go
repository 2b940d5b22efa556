package repository

import (
	"context"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// CategoryFilter filtros de listado de categorías.
type CategoryFilter struct {
	Search string // substring case-insensitive sobre name
	Level  *int   // nil = todos los niveles
}

// PathUpdate nuevo (level, path) calculado para un nodo durante una cascada.
type PathUpdate struct {
	ID    string
	Level int
	Path  string
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// La cascada de subárbol se aplica con UpdatePaths dentro de una transacción
// (ver CategoryTxRunner) para que los lectores nunca vean rutas parciales.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	UpdatePaths(ctx context.Context, updates []PathUpdate) error
	Delete(ctx context.Context, id string) error

	// List devuelve el conjunto filtrado ordenado lexicográficamente por path,
	// de modo que cada padre precede a sus descendientes.
	List(ctx context.Context, f CategoryFilter) ([]*entity.Category, error)
	// ListRoots devuelve las categorías sin padre que cumplen el filtro.
	ListRoots(ctx context.Context, f CategoryFilter) ([]*entity.Category, error)
	ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error)

	Count(ctx context.Context) (int, error)
	CountChildren(ctx context.Context, id string) (int, error)
	CountProducts(ctx context.Context, id string) (int, error)
	// ProductCounts devuelve id de categoría → número de productos, en una
	// sola consulta, para decorar los listados.
	ProductCounts(ctx context.Context) (map[string]int, error)
}

// CategoryTxRunner ejecuta fn con un CategoryRepository atado a una
// transacción; commit si fn retorna nil, rollback en caso contrario.
type CategoryTxRunner interface {
	RunCategories(ctx context.Context, fn func(repo CategoryRepository) error) error
}
