package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Code      string // único
	Location  string
	ManagerID string // usuario responsable, opcional
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
