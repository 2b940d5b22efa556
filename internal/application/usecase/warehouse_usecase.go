package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
	"github.com/invorya/inventario-api/pkg/validator"
)

// WarehouseUseCase CRUD de bodegas. El detalle incluye estadísticas de
// inventario; el listado no, para no pagar una consulta de agregados por fila.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
	stocks     repository.StockLevelRepository
	checker    access.Checker
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	warehouses repository.WarehouseRepository,
	stocks repository.StockLevelRepository,
	checker access.Checker,
) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses, stocks: stocks, checker: checker}
}

// List devuelve las bodegas visibles para el actor. Sin filtro de estado se
// listan solo las activas; status=all levanta el filtro. Un actor con bodega
// asignada solo ve la suya.
func (uc *WarehouseUseCase) List(ctx context.Context, actor access.Actor, q dto.ListWarehousesQuery) ([]dto.WarehouseResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermWarehouseView) {
		return nil, domain.ErrForbidden
	}
	status := q.Status
	if status == "" {
		status = entity.StatusActive
	}
	if status == "all" {
		status = ""
	}
	warehouses, err := uc.warehouses.List(ctx, repository.WarehouseFilter{Search: q.Search, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		if actor.Scoped() && w.ID != actor.WarehouseID {
			continue
		}
		out = append(out, toWarehouseResponse(w, nil))
	}
	return out, nil
}

// GetByID devuelve una bodega con sus estadísticas de inventario.
// El valor total se redondea a 2 decimales.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.WarehouseResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermWarehouseView) {
		return nil, domain.ErrForbidden
	}
	if actor.Scoped() && id != actor.WarehouseID {
		return nil, domain.ErrForbidden
	}
	warehouse, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	stats, err := uc.warehouses.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse, &dto.WarehouseStatistics{
		TotalProducts: stats.TotalProducts,
		TotalStock:    stats.TotalStock,
		TotalValue:    stats.TotalValue.Round(2),
	})
	return &resp, nil
}

// Create crea una bodega con código único.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermWarehouseCreate) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.checkCodeFree(ctx, in.Code, ""); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Location:  in.Location,
		ManagerID: in.ManagerID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(ctx, warehouse); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("code", "el código ya está en uso")
		}
		return nil, err
	}
	resp := toWarehouseResponse(warehouse, nil)
	return &resp, nil
}

// Update actualiza los campos presentes en la petición.
func (uc *WarehouseUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermWarehouseEdit) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	warehouse, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	if in.Code != nil && *in.Code != warehouse.Code {
		if err := uc.checkCodeFree(ctx, *in.Code, warehouse.ID); err != nil {
			return nil, err
		}
		warehouse.Code = *in.Code
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.ManagerID != nil {
		warehouse.ManagerID = *in.ManagerID
	}
	if in.Status != nil {
		warehouse.Status = *in.Status
	}
	warehouse.UpdatedAt = time.Now()

	if err := uc.warehouses.Update(ctx, warehouse); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("code", "el código ya está en uso")
		}
		return nil, err
	}
	resp := toWarehouseResponse(warehouse, nil)
	return &resp, nil
}

// Delete elimina una bodega vacía. Con stock disponible o usuarios asignados
// la eliminación se rechaza con conflicto.
func (uc *WarehouseUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !uc.checker.Can(actor.Role, access.PermWarehouseDelete) {
		return domain.ErrForbidden
	}
	warehouse, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.stocks.WarehouseHasAvailable(ctx, id)
	if err != nil {
		return err
	}
	if hasStock {
		return &domain.ConflictError{Message: "no se puede eliminar una bodega con stock disponible"}
	}
	users, err := uc.warehouses.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return &domain.ConflictError{Message: "no se puede eliminar una bodega con usuarios asignados"}
	}
	return uc.warehouses.Delete(ctx, id)
}

func (uc *WarehouseUseCase) checkCodeFree(ctx context.Context, code, selfID string) error {
	existing, err := uc.warehouses.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewValidationError("code", "el código ya está en uso")
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse, stats *dto.WarehouseStatistics) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:         w.ID,
		Name:       w.Name,
		Code:       w.Code,
		Location:   w.Location,
		ManagerID:  w.ManagerID,
		Status:     w.Status,
		Statistics: stats,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
