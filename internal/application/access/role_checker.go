package access

import "github.com/invorya/inventario-api/internal/domain/entity"

// RoleChecker implementa Checker con la matriz estática rol → permisos.
// super_admin tiene todos los permisos; un rol desconocido no tiene ninguno.
type RoleChecker struct {
	grants map[string]map[string]struct{}
}

// NewRoleChecker construye el oráculo con la matriz de la aplicación.
func NewRoleChecker() *RoleChecker {
	matrix := map[string][]string{
		entity.RoleAdmin: {
			PermWarehouseView, PermWarehouseCreate, PermWarehouseEdit,
			PermCategoryView, PermCategoryCreate, PermCategoryEdit, PermCategoryDelete,
			PermProductView, PermProductCreate, PermProductEdit, PermProductDelete,
			PermStockView, PermStockEdit, PermStockAdjust, PermStockTransfer,
			PermReportsView, PermReportsExport,
			PermDashboardView,
		},
		entity.RoleWarehouseManager: {
			PermProductView, PermProductCreate, PermProductEdit,
			PermStockView, PermStockEdit, PermStockAdjust, PermStockTransfer,
			PermReportsView,
			PermDashboardView,
		},
		entity.RoleStaff: {
			PermProductView,
			PermStockView,
			PermDashboardView,
		},
		entity.RoleViewer: {
			PermWarehouseView,
			PermCategoryView,
			PermProductView,
			PermStockView,
			PermReportsView,
			PermDashboardView,
		},
	}

	grants := make(map[string]map[string]struct{}, len(matrix))
	for role, perms := range matrix {
		set := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		grants[role] = set
	}
	return &RoleChecker{grants: grants}
}

// Can responde si el rol tiene el permiso.
func (c *RoleChecker) Can(role, permission string) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	set, ok := c.grants[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}
