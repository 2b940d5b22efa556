package entity

import "time"

// Roles válidos para User. El mapa rol → permisos vive en el paquete access.
const (
	RoleSuperAdmin       = "super_admin"
	RoleAdmin            = "admin"
	RoleWarehouseManager = "warehouse_manager"
	RoleStaff            = "staff"
	RoleViewer           = "viewer"
)

// User representa un usuario del sistema. WarehouseID, cuando no está vacío,
// restringe todas sus consultas de inventario a esa bodega.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string
	WarehouseID  string // vacío = sin restricción de bodega
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
