package entity

import "time"

// Category representa una categoría jerárquica de productos.
// Level y Path son derivados: Level es la profundidad en el árbol (raíz = 0)
// y Path la ruta materializada de slugs desde la raíz ("electronics/computers").
// Ambos se recalculan en cascada al renombrar o mover la categoría.
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Slug        string // derivado del nombre, apto para URL
	Description string
	Level       int    // == parent.Level + 1; 0 en raíz
	Path        string // == parent.Path + "/" + Slug; == Slug en raíz
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Children se carga bajo demanda para la vista de árbol.
	Children []*Category
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool { return c.ParentID == "" }
