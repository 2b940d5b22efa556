package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product y Warehouse.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product representa un producto del catálogo. El stock se maneja por bodega
// en StockLevel (una fila por bodega como máximo); aquí solo viven los datos
// maestros y el umbral de reposición.
type Product struct {
	ID           string
	CategoryID   string
	Name         string
	SKU          string // único global
	Unit         string // etiqueta de unidad: "pcs", "kg", ...
	CostPrice    decimal.Decimal
	SellPrice    decimal.Decimal
	ReorderLevel int // umbral de stock bajo, >= 0
	Metadata     json.RawMessage
	Description  string
	Barcode      string // único global cuando no está vacío
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
