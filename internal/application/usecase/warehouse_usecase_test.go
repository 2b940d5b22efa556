package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/application/usecase"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
	stats      map[string]*repository.WarehouseStats
	users      map[string]int
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{
		warehouses: map[string]*entity.Warehouse{},
		stats:      map[string]*repository.WarehouseStats{},
		users:      map[string]int{},
	}
}

func (f *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	f.warehouses[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	for _, w := range f.warehouses {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	if _, ok := f.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	f.warehouses[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(f.warehouses, id)
	return nil
}

func (f *fakeWarehouseRepo) List(_ context.Context, filter repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(w.Name), s) &&
				!strings.Contains(strings.ToLower(w.Code), s) &&
				!strings.Contains(strings.ToLower(w.Location), s) {
				continue
			}
		}
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeWarehouseRepo) Stats(_ context.Context, id string) (*repository.WarehouseStats, error) {
	if s, ok := f.stats[id]; ok {
		cp := *s
		return &cp, nil
	}
	return &repository.WarehouseStats{TotalValue: decimal.Zero}, nil
}

func (f *fakeWarehouseRepo) CountUsers(_ context.Context, id string) (int, error) {
	return f.users[id], nil
}

// ──────────────────────────────────────────────────────────────────────────────

type warehouseFixture struct {
	uc     *usecase.WarehouseUseCase
	repo   *fakeWarehouseRepo
	stocks *fakeStockRepo
}

func newWarehouseFixture() *warehouseFixture {
	repo := newFakeWarehouseRepo()
	stocks := newFakeStockRepo()
	return &warehouseFixture{
		uc:     usecase.NewWarehouseUseCase(repo, stocks, access.NewRoleChecker()),
		repo:   repo,
		stocks: stocks,
	}
}

func (fx *warehouseFixture) create(t *testing.T, name, code string) dto.WarehouseResponse {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), admin, dto.CreateWarehouseRequest{Name: name, Code: code})
	require.NoError(t, err)
	return *out
}

func TestWarehouseCreate_CodigoDuplicado(t *testing.T) {
	fx := newWarehouseFixture()
	fx.create(t, "Central", "WH-1")

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateWarehouseRequest{Name: "Otra", Code: "WH-1"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "code")
}

func TestWarehouseGetByID_EstadisticasRedondeadas(t *testing.T) {
	fx := newWarehouseFixture()
	w := fx.create(t, "Central", "WH-1")
	fx.repo.stats[w.ID] = &repository.WarehouseStats{
		TotalProducts: 2,
		TotalStock:    30,
		TotalValue:    decimal.RequireFromString("199.999"),
	}

	out, err := fx.uc.GetByID(context.Background(), admin, w.ID)
	require.NoError(t, err)

	require.NotNil(t, out.Statistics)
	assert.Equal(t, 2, out.Statistics.TotalProducts)
	assert.Equal(t, 30, out.Statistics.TotalStock)
	assert.True(t, out.Statistics.TotalValue.Equal(decimal.RequireFromString("200.00")))
}

func TestWarehouseList_NoIncluyeEstadisticas(t *testing.T) {
	fx := newWarehouseFixture()
	fx.create(t, "Central", "WH-1")
	fx.create(t, "Norte", "WH-2")

	out, err := fx.uc.List(context.Background(), admin, dto.ListWarehousesQuery{})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Nil(t, out[0].Statistics)
	assert.Equal(t, "Central", out[0].Name)
}

func TestWarehouseList_PorDefectoSoloActivas(t *testing.T) {
	fx := newWarehouseFixture()
	fx.create(t, "Central", "WH-1")
	inactive := entity.StatusInactive
	out, err := fx.uc.Update(context.Background(), admin, fx.create(t, "Cerrada", "WH-2").ID,
		dto.UpdateWarehouseRequest{Status: &inactive})
	require.NoError(t, err)

	// Sin parámetro de estado solo se listan las activas.
	listed, err := fx.uc.List(context.Background(), admin, dto.ListWarehousesQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Central", listed[0].Name)

	// status=all levanta el filtro; status=inactive devuelve la cerrada.
	listed, err = fx.uc.List(context.Background(), admin, dto.ListWarehousesQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = fx.uc.List(context.Background(), admin, dto.ListWarehousesQuery{Status: entity.StatusInactive})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, out.ID, listed[0].ID)
}

func TestWarehouseList_ActorConAlcanceSoloVeLaSuya(t *testing.T) {
	fx := newWarehouseFixture()
	w1 := fx.create(t, "Central", "WH-1")
	fx.create(t, "Norte", "WH-2")

	scoped := access.Actor{UserID: "u5", Role: entity.RoleViewer, WarehouseID: w1.ID}
	out, err := fx.uc.List(context.Background(), scoped, dto.ListWarehousesQuery{})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, w1.ID, out[0].ID)
}

func TestWarehouseGetByID_AlcanceAjeno(t *testing.T) {
	fx := newWarehouseFixture()
	w1 := fx.create(t, "Central", "WH-1")
	w2 := fx.create(t, "Norte", "WH-2")

	scoped := access.Actor{UserID: "u5", Role: entity.RoleViewer, WarehouseID: w1.ID}
	_, err := fx.uc.GetByID(context.Background(), scoped, w2.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWarehouseUpdate_DesasignarEncargado(t *testing.T) {
	fx := newWarehouseFixture()
	w := fx.create(t, "Central", "WH-1")

	managerID := "0b8a6c1e-2a54-4f3e-9a5f-1c2d3e4f5a6b"
	out, err := fx.uc.Update(context.Background(), admin, w.ID, dto.UpdateWarehouseRequest{ManagerID: &managerID})
	require.NoError(t, err)
	assert.Equal(t, managerID, out.ManagerID)

	// La cadena vacía desasigna al encargado; no debe fallar la validación.
	empty := ""
	out, err = fx.uc.Update(context.Background(), admin, w.ID, dto.UpdateWarehouseRequest{ManagerID: &empty})
	require.NoError(t, err)
	assert.Empty(t, out.ManagerID)
}

func TestWarehouseDelete_BloqueadaConStock(t *testing.T) {
	fx := newWarehouseFixture()
	w := fx.create(t, "Central", "WH-1")
	fx.stocks.add("p1", w.ID, 5, 0)

	err := fx.uc.Delete(context.Background(), superAdmin, w.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWarehouseDelete_BloqueadaConUsuarios(t *testing.T) {
	fx := newWarehouseFixture()
	w := fx.create(t, "Central", "WH-1")
	fx.repo.users[w.ID] = 2

	err := fx.uc.Delete(context.Background(), superAdmin, w.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWarehouseDelete_SinPermisoAdmin(t *testing.T) {
	// admin no tiene warehouse.delete; solo super_admin.
	fx := newWarehouseFixture()
	w := fx.create(t, "Central", "WH-1")

	err := fx.uc.Delete(context.Background(), admin, w.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, fx.uc.Delete(context.Background(), superAdmin, w.ID))
}
