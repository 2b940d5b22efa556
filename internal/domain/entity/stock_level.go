package entity

import "time"

// StockLevel representa el stock de un producto en una bodega.
// A lo sumo una fila por par (producto, bodega). Para este servicio es un
// insumo de solo lectura: los ajustes de stock llegan por otro canal.
type StockLevel struct {
	ID           string
	ProductID    string
	WarehouseID  string
	AvailableQty int // >= 0
	ReservedQty  int // >= 0, apartado para asignaciones pendientes
	UpdatedAt    time.Time
}

// TotalQty devuelve la cantidad total (disponible + reservada).
func (s *StockLevel) TotalQty() int { return s.AvailableQty + s.ReservedQty }
