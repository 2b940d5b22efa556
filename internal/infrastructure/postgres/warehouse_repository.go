package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = "id, name, code, location, manager_id, status, created_at, updated_at"

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, code, location, manager_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Name, warehouse.Code, warehouse.Location,
		nullIfEmpty(warehouse.ManagerID), warehouse.Status, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene una bodega por código.
func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	return r.getBy(ctx, "code", code)
}

func (r *WarehouseRepo) getBy(ctx context.Context, column, value string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE ` + column + ` = $1`
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse by %s: %w", column, err)
	}
	return w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $2, code = $3, location = $4, manager_id = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Name, warehouse.Code, warehouse.Location,
		nullIfEmpty(warehouse.ManagerID), warehouse.Status, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// List lista bodegas filtradas, ordenadas por nombre.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Stats calcula los agregados de inventario de una bodega sobre sus filas
// con disponible positivo.
func (r *WarehouseRepo) Stats(ctx context.Context, id string) (*repository.WarehouseStats, error) {
	query := `
		SELECT count(DISTINCT s.product_id),
		       COALESCE(sum(s.available_qty), 0),
		       COALESCE(sum(s.available_qty * p.cost_price), 0)
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		WHERE s.warehouse_id = $1 AND s.available_qty > 0`
	var stats repository.WarehouseStats
	var value decimal.Decimal
	err := r.q.QueryRow(ctx, query, id).Scan(&stats.TotalProducts, &stats.TotalStock, &value)
	if err != nil {
		return nil, fmt.Errorf("warehouse stats: %w", err)
	}
	stats.TotalValue = value
	return &stats, nil
}

// CountUsers cuenta los usuarios asignados a una bodega.
func (r *WarehouseRepo) CountUsers(ctx context.Context, id string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM users WHERE warehouse_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count warehouse users: %w", err)
	}
	return n, nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var managerID *string
	err := row.Scan(
		&w.ID, &w.Name, &w.Code, &w.Location, &managerID, &w.Status,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.ManagerID = orEmpty(managerID)
	return &w, nil
}
