package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	Code      string `json:"code" validate:"required,min=1,max=50"`
	Location  string `json:"location"`
	ManagerID string `json:"manager_id" validate:"omitempty,uuid4"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega. La cadena
// vacía en manager_id desasigna al encargado, por eso no lleva regla uuid.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Code      *string `json:"code" validate:"omitempty,min=1,max=50"`
	Location  *string `json:"location"`
	ManagerID *string `json:"manager_id"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListWarehousesQuery parámetros de GET /api/warehouses.
type ListWarehousesQuery struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

// WarehouseStatistics agregados de inventario de una bodega.
type WarehouseStatistics struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// WarehouseResponse salida de una bodega. Statistics solo se incluye en el detalle.
type WarehouseResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Code       string               `json:"code"`
	Location   string               `json:"location"`
	ManagerID  string               `json:"manager_id,omitempty"`
	Status     string               `json:"status"`
	Statistics *WarehouseStatistics `json:"statistics,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}
