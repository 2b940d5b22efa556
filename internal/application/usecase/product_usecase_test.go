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

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range f.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), s) &&
				!strings.Contains(strings.ToLower(p.SKU), s) &&
				!strings.Contains(strings.ToLower(p.Barcode), s) {
				continue
			}
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

type fakeStockRepo struct {
	// filas por producto, con su bodega adjunta
	rows map[string][]repository.WarehouseStock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string][]repository.WarehouseStock{}}
}

func (f *fakeStockRepo) add(productID, warehouseID string, available, reserved int) {
	f.rows[productID] = append(f.rows[productID], repository.WarehouseStock{
		Level: &entity.StockLevel{
			ProductID:    productID,
			WarehouseID:  warehouseID,
			AvailableQty: available,
			ReservedQty:  reserved,
		},
		WarehouseName: "Bodega " + warehouseID,
		WarehouseCode: "WH-" + warehouseID,
	})
}

func (f *fakeStockRepo) ListByProduct(_ context.Context, productID, warehouseID string) ([]repository.WarehouseStock, error) {
	var out []repository.WarehouseStock
	for _, ws := range f.rows[productID] {
		if warehouseID != "" && ws.Level.WarehouseID != warehouseID {
			continue
		}
		out = append(out, ws)
	}
	return out, nil
}

func (f *fakeStockRepo) ListByProducts(ctx context.Context, productIDs []string, warehouseID string) (map[string][]repository.WarehouseStock, error) {
	out := map[string][]repository.WarehouseStock{}
	for _, id := range productIDs {
		ws, err := f.ListByProduct(ctx, id, warehouseID)
		if err != nil {
			return nil, err
		}
		if len(ws) > 0 {
			out[id] = ws
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ProductHasAvailable(_ context.Context, productID string) (bool, error) {
	for _, ws := range f.rows[productID] {
		if ws.Level.AvailableQty > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStockRepo) WarehouseHasAvailable(_ context.Context, warehouseID string) (bool, error) {
	for _, rows := range f.rows {
		for _, ws := range rows {
			if ws.Level.WarehouseID == warehouseID && ws.Level.AvailableQty > 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	uc         *usecase.ProductUseCase
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	stocks     *fakeStockRepo
	categoryID string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	categories := newFakeCategoryRepo()
	catUC := usecase.NewCategoryUseCase(categories, categories, access.NewRoleChecker())
	cat, err := catUC.Create(context.Background(), admin, dto.CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	products := newFakeProductRepo()
	stocks := newFakeStockRepo()
	return &productFixture{
		uc:         usecase.NewProductUseCase(products, categories, stocks, access.NewRoleChecker()),
		products:   products,
		categories: categories,
		stocks:     stocks,
		categoryID: cat.ID,
	}
}

func (fx *productFixture) create(t *testing.T, name, sku string, reorder int) dto.ProductResponse {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), admin, dto.CreateProductRequest{
		Name:         name,
		SKU:          sku,
		CategoryID:   fx.categoryID,
		Unit:         "pcs",
		CostPrice:    decimal.NewFromInt(10),
		SellPrice:    decimal.NewFromInt(15),
		ReorderLevel: reorder,
	})
	require.NoError(t, err)
	return *out
}

func TestProductCreate_DefaultsYCategoria(t *testing.T) {
	fx := newProductFixture(t)

	out := fx.create(t, "Laptop", "SKU-1", 5)

	assert.Equal(t, entity.StatusActive, out.Status)
	require.NotNil(t, out.Category)
	assert.Equal(t, "electronics", out.Category.Path)
	assert.True(t, out.IsOutOfStock, "sin filas de stock el producto está agotado")
	assert.True(t, out.IsLowStock, "0 <= reorder_level también cuenta como stock bajo")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	fx := newProductFixture(t)
	fx.create(t, "Laptop", "SKU-1", 5)

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateProductRequest{
		Name:       "Otro",
		SKU:        "SKU-1",
		CategoryID: fx.categoryID,
		Unit:       "pcs",
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sku")
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	fx := newProductFixture(t)

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateProductRequest{
		Name:       "Laptop",
		SKU:        "SKU-1",
		CategoryID: "0c7f18de-6f49-41be-a035-a4b66ec54300",
		Unit:       "pcs",
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "category_id")
}

func TestProductCreate_PrecioNegativo(t *testing.T) {
	fx := newProductFixture(t)

	_, err := fx.uc.Create(context.Background(), admin, dto.CreateProductRequest{
		Name:       "Laptop",
		SKU:        "SKU-1",
		CategoryID: fx.categoryID,
		Unit:       "pcs",
		CostPrice:  decimal.NewFromInt(-1),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "cost_price")
}

func TestProductCreate_SinPermiso(t *testing.T) {
	fx := newProductFixture(t)

	_, err := fx.uc.Create(context.Background(), viewer, dto.CreateProductRequest{
		Name:       "Laptop",
		SKU:        "SKU-1",
		CategoryID: fx.categoryID,
		Unit:       "pcs",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductGetByID_AgregadosDeStock(t *testing.T) {
	fx := newProductFixture(t)
	p := fx.create(t, "Laptop", "SKU-1", 10)
	fx.stocks.add(p.ID, "w1", 6, 2)
	fx.stocks.add(p.ID, "w2", 4, 1)

	out, err := fx.uc.GetByID(context.Background(), viewer, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, out.TotalStock)
	assert.Equal(t, 3, out.ReservedStock)
	assert.Equal(t, 7, out.AvailableStock)
	assert.True(t, out.IsLowStock, "10 disponibles == reorder_level 10 es stock bajo")
	assert.False(t, out.IsOutOfStock)
	assert.Len(t, out.StockLevels, 2)
}

func TestProductGetByID_AlcanceDeBodega(t *testing.T) {
	fx := newProductFixture(t)
	p := fx.create(t, "Laptop", "SKU-1", 3)
	fx.stocks.add(p.ID, "w1", 6, 0)
	fx.stocks.add(p.ID, "w2", 4, 0)

	scoped := access.Actor{UserID: "u3", Role: entity.RoleStaff, WarehouseID: "w2"}
	out, err := fx.uc.GetByID(context.Background(), scoped, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalStock, "solo cuenta la bodega asignada al actor")
	assert.Len(t, out.StockLevels, 1)
	assert.Equal(t, "w2", out.StockLevels[0].Warehouse.ID)
}

func TestProductList_PaginacionYSobre(t *testing.T) {
	fx := newProductFixture(t)
	fx.create(t, "Alfombrilla", "SKU-1", 1)
	fx.create(t, "Laptop", "SKU-2", 1)
	fx.create(t, "Monitor", "SKU-3", 1)

	page, err := fx.uc.List(context.Background(), viewer, dto.ListProductsQuery{PerPage: 2, Page: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, 3, page.Total)
	require.NotNil(t, page.From)
	require.NotNil(t, page.To)
	assert.Equal(t, 3, *page.From)
	assert.Equal(t, 3, *page.To)

	items := page.Data.([]dto.ProductResponse)
	require.Len(t, items, 1)
	assert.Equal(t, "Monitor", items[0].Name)
}

func TestProductList_PaginaVaciaFromToNulos(t *testing.T) {
	fx := newProductFixture(t)

	page, err := fx.uc.List(context.Background(), viewer, dto.ListProductsQuery{})
	require.NoError(t, err)

	assert.Nil(t, page.From)
	assert.Nil(t, page.To)
	assert.Equal(t, 1, page.LastPage)
}

func TestProductList_PorDefectoSoloActivos(t *testing.T) {
	fx := newProductFixture(t)
	fx.create(t, "Activo", "SKU-1", 1)
	inactive := fx.create(t, "Inactivo", "SKU-2", 1)
	st := entity.StatusInactive
	_, err := fx.uc.Update(context.Background(), admin, inactive.ID, dto.UpdateProductRequest{Status: &st})
	require.NoError(t, err)

	page, err := fx.uc.List(context.Background(), viewer, dto.ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	all, err := fx.uc.List(context.Background(), viewer, dto.ListProductsQuery{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestProductUpdate_CambioDeSKUEnConflicto(t *testing.T) {
	fx := newProductFixture(t)
	fx.create(t, "Laptop", "SKU-1", 1)
	other := fx.create(t, "Monitor", "SKU-2", 1)

	taken := "SKU-1"
	_, err := fx.uc.Update(context.Background(), admin, other.ID, dto.UpdateProductRequest{SKU: &taken})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sku")
}

func TestProductUpdate_MantenerPropioSKU(t *testing.T) {
	fx := newProductFixture(t)
	p := fx.create(t, "Laptop", "SKU-1", 1)

	same := "SKU-1"
	name := "Laptop Pro"
	out, err := fx.uc.Update(context.Background(), admin, p.ID, dto.UpdateProductRequest{SKU: &same, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", out.Name)
}

func TestProductDelete_BloqueadoConStockDisponible(t *testing.T) {
	fx := newProductFixture(t)
	p := fx.create(t, "Laptop", "SKU-1", 1)
	fx.stocks.add(p.ID, "w1", 3, 0)

	err := fx.uc.Delete(context.Background(), admin, p.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductDelete_SinStock(t *testing.T) {
	fx := newProductFixture(t)
	p := fx.create(t, "Laptop", "SKU-1", 1)
	fx.stocks.add(p.ID, "w1", 0, 0)

	require.NoError(t, fx.uc.Delete(context.Background(), admin, p.ID))
	_, ok := fx.products.products[p.ID]
	assert.False(t, ok)
}
