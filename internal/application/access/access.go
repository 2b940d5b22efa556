// Package access modela la autorización: quién pide (Actor), qué capacidad
// exige cada operación (Permission) y el oráculo rol → permiso (Checker).
// El Checker se inyecta en los casos de uso para que el dominio sea testeable
// sin un subsistema de auth real.
package access

// Permisos de la aplicación, con la forma <recurso>.<acción>.
const (
	PermUserView        = "user.view"
	PermUserCreate      = "user.create"
	PermUserEdit        = "user.edit"
	PermUserDelete      = "user.delete"
	PermWarehouseView   = "warehouse.view"
	PermWarehouseCreate = "warehouse.create"
	PermWarehouseEdit   = "warehouse.edit"
	PermWarehouseDelete = "warehouse.delete"
	PermCategoryView    = "category.view"
	PermCategoryCreate  = "category.create"
	PermCategoryEdit    = "category.edit"
	PermCategoryDelete  = "category.delete"
	PermProductView     = "product.view"
	PermProductCreate   = "product.create"
	PermProductEdit     = "product.edit"
	PermProductDelete   = "product.delete"
	PermStockView       = "stock.view"
	PermStockEdit       = "stock.edit"
	PermStockAdjust     = "stock.adjust"
	PermStockTransfer   = "stock.transfer"
	PermReportsView     = "reports.view"
	PermReportsExport   = "reports.export"
	PermDashboardView   = "dashboard.view"
)

// Actor es el usuario autenticado visto por los casos de uso.
// WarehouseID no vacío restringe todas sus lecturas a esa bodega.
type Actor struct {
	UserID      string
	Role        string
	WarehouseID string
}

// Scoped indica si el actor tiene restricción de bodega.
func (a Actor) Scoped() bool { return a.WarehouseID != "" }

// Checker es el oráculo de permisos. Responde si un rol tiene una capacidad.
type Checker interface {
	Can(role, permission string) bool
}
