package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=255"`
	SKU          string          `json:"sku" validate:"required,min=1,max=255"`
	CategoryID   string          `json:"category_id" validate:"required,uuid4"`
	Unit         string          `json:"unit" validate:"required,max=50"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Metadata     json.RawMessage `json:"metadata"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	Status       string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=255"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,uuid4"`
	Unit         *string          `json:"unit" validate:"omitempty,max=50"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellPrice    *decimal.Decimal `json:"sell_price"`
	ReorderLevel *int             `json:"reorder_level" validate:"omitempty,gte=0"`
	Metadata     json.RawMessage  `json:"metadata"`
	Description  *string          `json:"description"`
	Barcode      *string          `json:"barcode"`
	Status       *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListProductsQuery parámetros de GET /api/products.
type ListProductsQuery struct {
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Status     string `query:"status"`
	PerPage    int    `query:"per_page"`
	Page       int    `query:"page"`
}

// CategoryRef referencia mínima a la categoría incrustada en las respuestas.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// WarehouseRef referencia mínima a la bodega de un nivel de stock.
type WarehouseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StockLevelResponse un nivel de stock visible para el solicitante.
type StockLevelResponse struct {
	Warehouse    WarehouseRef `json:"warehouse"`
	AvailableQty int          `json:"available_qty"`
	ReservedQty  int          `json:"reserved_qty"`
}

// ProductResponse salida de un producto, enriquecida con los agregados de
// stock calculados sobre las bodegas visibles para el solicitante.
type ProductResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	SKU            string               `json:"sku"`
	Category       *CategoryRef         `json:"category"`
	Unit           string               `json:"unit"`
	CostPrice      decimal.Decimal      `json:"cost_price"`
	SellPrice      decimal.Decimal      `json:"sell_price"`
	ReorderLevel   int                  `json:"reorder_level"`
	Metadata       json.RawMessage      `json:"metadata,omitempty"`
	Description    string               `json:"description"`
	Barcode        string               `json:"barcode,omitempty"`
	Status         string               `json:"status"`
	TotalStock     int                  `json:"total_stock"`
	ReservedStock  int                  `json:"reserved_stock"`
	AvailableStock int                  `json:"available_stock"`
	IsLowStock     bool                 `json:"is_low_stock"`
	IsOutOfStock   bool                 `json:"is_out_of_stock"`
	StockLevels    []StockLevelResponse `json:"stock_levels"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
