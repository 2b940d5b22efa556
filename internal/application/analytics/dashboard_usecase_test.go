package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
)

type fakeDashboardRepo struct {
	products   int
	warehouses int
	recent     int
	// valor por alcance: "" = global
	values map[string]decimal.Decimal
	rows   map[string][]repository.ProductStockRow
}

func (f *fakeDashboardRepo) CountActiveProducts(context.Context) (int, error)   { return f.products, nil }
func (f *fakeDashboardRepo) CountActiveWarehouses(context.Context) (int, error) { return f.warehouses, nil }

func (f *fakeDashboardRepo) CountRecentActiveProducts(_ context.Context, since time.Time) (int, error) {
	return f.recent, nil
}

func (f *fakeDashboardRepo) StockValue(_ context.Context, warehouseID string) (decimal.Decimal, error) {
	v, ok := f.values[warehouseID]
	if !ok {
		return decimal.Zero, nil
	}
	return v, nil
}

func (f *fakeDashboardRepo) ListActiveProductStock(_ context.Context, warehouseID string) ([]repository.ProductStockRow, error) {
	return f.rows[warehouseID], nil
}

func row(name, category string, available, reorder int) repository.ProductStockRow {
	return repository.ProductStockRow{
		ID:           "id-" + name,
		Name:         name,
		SKU:          "SKU-" + name,
		CategoryName: category,
		ReorderLevel: reorder,
		Available:    available,
	}
}

var dashAdmin = access.Actor{UserID: "u1", Role: entity.RoleAdmin}

func TestDashboardStats_CifrasBasicas(t *testing.T) {
	repo := &fakeDashboardRepo{
		products:   4,
		warehouses: 2,
		recent:     1,
		values:     map[string]decimal.Decimal{"": decimal.RequireFromString("1234.567")},
		rows: map[string][]repository.ProductStockRow{
			"": {
				row("a", "Electronics", 0, 5),  // agotado
				row("b", "Electronics", 3, 5),  // stock bajo
				row("c", "Electronics", 5, 5),  // stock bajo (frontera <=)
				row("d", "Clothing", 50, 5),    // sano
			},
		},
	}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	out, err := uc.Stats(context.Background(), dashAdmin)
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalProducts)
	assert.Equal(t, 2, out.TotalWarehouses)
	assert.True(t, out.TotalStockValue.Equal(decimal.RequireFromString("1234.57")), "redondeo a 2 decimales")
	assert.Equal(t, 2, out.LowStockCount)
	assert.Equal(t, 1, out.OutOfStockCount)
	assert.Equal(t, 1, out.RecentProducts)
	require.Len(t, out.LowStockProducts, 2)
	assert.Equal(t, "b", out.LowStockProducts[0].Name)
}

func TestDashboardStats_AgotadosNoEntranEnStockBajo(t *testing.T) {
	repo := &fakeDashboardRepo{
		rows: map[string][]repository.ProductStockRow{
			"": {row("a", "X", 0, 10), row("b", "X", 0, 10)},
		},
	}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	out, err := uc.Stats(context.Background(), dashAdmin)
	require.NoError(t, err)

	assert.Equal(t, 2, out.OutOfStockCount)
	assert.Equal(t, 0, out.LowStockCount)
	assert.Empty(t, out.LowStockProducts)
}

func TestDashboardStats_WidgetTruncadoACinco(t *testing.T) {
	rows := make([]repository.ProductStockRow, 0, 7)
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		rows = append(rows, row(n, "X", 1, 10))
	}
	repo := &fakeDashboardRepo{rows: map[string][]repository.ProductStockRow{"": rows}}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	out, err := uc.Stats(context.Background(), dashAdmin)
	require.NoError(t, err)

	assert.Equal(t, 7, out.LowStockCount, "el conteo no se trunca")
	require.Len(t, out.LowStockProducts, 5, "el widget sí")
	assert.Equal(t, "a", out.LowStockProducts[0].Name, "orden de creación, no de severidad")
}

func TestDashboardStats_SinPermisoDeBodegasReportaCero(t *testing.T) {
	repo := &fakeDashboardRepo{products: 3, warehouses: 9}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	// warehouse_manager tiene dashboard.view pero no warehouse.view.
	manager := access.Actor{UserID: "u2", Role: entity.RoleWarehouseManager}
	out, err := uc.Stats(context.Background(), manager)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 0, out.TotalWarehouses)
}

func TestDashboardStats_AlcanceDeBodega(t *testing.T) {
	repo := &fakeDashboardRepo{
		values: map[string]decimal.Decimal{
			"":   decimal.RequireFromString("1000"),
			"w1": decimal.RequireFromString("250"),
		},
		rows: map[string][]repository.ProductStockRow{
			"":   {row("a", "X", 100, 5)},
			"w1": {row("a", "X", 2, 5)},
		},
	}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	scoped := access.Actor{UserID: "u3", Role: entity.RoleStaff, WarehouseID: "w1"}
	out, err := uc.Stats(context.Background(), scoped)
	require.NoError(t, err)

	assert.True(t, out.TotalStockValue.Equal(decimal.RequireFromString("250")))
	assert.Equal(t, 1, out.LowStockCount, "con 2 disponibles en w1 el producto está bajo")
}

func TestDashboardStats_SinPermiso(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboardRepo{}, access.NewRoleChecker())

	_, err := uc.Stats(context.Background(), access.Actor{Role: "desconocido"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDashboardStockChart_AgrupaYOrdena(t *testing.T) {
	repo := &fakeDashboardRepo{
		rows: map[string][]repository.ProductStockRow{
			"": {
				row("a", "Electronics", 10, 1),
				row("b", "Electronics", 5, 1),
				row("c", "Clothing", 40, 1),
				row("d", "", 3, 1),
			},
		},
	}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())

	out, err := uc.StockChart(context.Background(), dashAdmin)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, dto.StockChartItemDTO{Category: "Clothing", StockCount: 40}, out[0])
	assert.Equal(t, dto.StockChartItemDTO{Category: "Electronics", StockCount: 15}, out[1])
	assert.Equal(t, dto.StockChartItemDTO{Category: "Uncategorized", StockCount: 3}, out[2])
}

func TestDashboardStats_VentanaDeRecientes(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := NewDashboardUseCase(repo, access.NewRoleChecker())
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	var captured time.Time
	// envolver el repo para capturar el umbral pedido
	uc.repo = &sinceCapture{fakeDashboardRepo: repo, captured: &captured}

	_, err := uc.Stats(context.Background(), dashAdmin)
	require.NoError(t, err)

	assert.Equal(t, fixed.AddDate(0, 0, -7), captured)
}

type sinceCapture struct {
	*fakeDashboardRepo
	captured *time.Time
}

func (s *sinceCapture) CountRecentActiveProducts(ctx context.Context, since time.Time) (int, error) {
	*s.captured = since
	return s.fakeDashboardRepo.CountRecentActiveProducts(ctx, since)
}
