package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	ParentID    *string `json:"parent_id"`
	Description string  `json:"description"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
// Los punteros distinguen "no enviado" de "enviado". Para mover una
// categoría a la raíz se envía parent_id como cadena vacía, de modo que
// parent_id no lleva regla de formato: el caso de uso resuelve el valor
// no vacío contra el repositorio.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	ParentID    *string `json:"parent_id"`
	Description *string `json:"description"`
}

// ListCategoriesQuery parámetros de GET /api/categories.
type ListCategoriesQuery struct {
	Search string `query:"search"`
	Level  *int   `query:"level"`
	Tree   bool   `query:"tree"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID            string             `json:"id"`
	ParentID      *string            `json:"parent_id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	Level         int                `json:"level"`
	Path          string             `json:"path"`
	ProductsCount *int               `json:"products_count,omitempty"`
	Children      []CategoryResponse `json:"children,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
