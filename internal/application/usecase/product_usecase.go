package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/application/access"
	"github.com/invorya/inventario-api/internal/application/dto"
	"github.com/invorya/inventario-api/internal/domain"
	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/repository"
	"github.com/invorya/inventario-api/internal/domain/stock"
	"github.com/invorya/inventario-api/pkg/validator"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// ProductUseCase CRUD de productos. Las lecturas se enriquecen con los
// agregados de stock calculados sobre las bodegas visibles para el actor:
// un actor con bodega asignada solo ve las filas de stock de esa bodega.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	stocks     repository.StockLevelRepository
	checker    access.Checker
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	stocks repository.StockLevelRepository,
	checker access.Checker,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, stocks: stocks, checker: checker}
}

// List devuelve la página de productos solicitada. Por defecto solo productos
// activos; status=all levanta el filtro. El alcance de bodega del actor
// restringe tanto las filas devueltas como los agregados de stock.
func (uc *ProductUseCase) List(ctx context.Context, actor access.Actor, q dto.ListProductsQuery) (*dto.Page, error) {
	if !uc.checker.Can(actor.Role, access.PermProductView) {
		return nil, domain.ErrForbidden
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	status := q.Status
	if status == "" {
		status = entity.StatusActive
	}
	if status == "all" {
		status = ""
	}

	filter := repository.ProductFilter{
		Search:      q.Search,
		CategoryID:  q.CategoryID,
		Status:      status,
		WarehouseID: actor.WarehouseID,
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
	}
	products, total, err := uc.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses, err := uc.toProductResponses(ctx, actor, products)
	if err != nil {
		return nil, err
	}
	result := dto.NewPage(responses, page, perPage, total, len(responses))
	return &result, nil
}

// GetByID devuelve un producto con sus niveles de stock visibles.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.ProductResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermProductView) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	levels, err := uc.stocks.ListByProduct(ctx, id, actor.WarehouseID)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRef(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, category, levels)
	return &resp, nil
}

// Create crea un producto. SKU y barcode deben ser únicos; la categoría debe
// existir. Violaciones de unicidad se reportan como errores de validación
// por campo, no como 500.
func (uc *ProductUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermProductCreate) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := validatePrices(in.CostPrice, in.SellPrice); err != nil {
		return nil, err
	}

	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewValidationError("category_id", "la categoría no existe")
	}
	if err := uc.checkSKUFree(ctx, in.SKU, ""); err != nil {
		return nil, err
	}
	if in.Barcode != "" {
		if err := uc.checkBarcodeFree(ctx, in.Barcode, ""); err != nil {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		SKU:          in.SKU,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellPrice:    in.SellPrice,
		ReorderLevel: in.ReorderLevel,
		Metadata:     in.Metadata,
		Description:  in.Description,
		Barcode:      in.Barcode,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("sku", "el sku ya está en uso")
		}
		return nil, err
	}

	resp := toProductResponse(product, toCategoryRef(category), nil)
	return &resp, nil
}

// Update actualiza los campos presentes en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermProductEdit) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		if err := uc.checkSKUFree(ctx, *in.SKU, product.ID); err != nil {
			return nil, err
		}
		product.SKU = *in.SKU
	}
	if in.Barcode != nil && *in.Barcode != product.Barcode {
		if *in.Barcode != "" {
			if err := uc.checkBarcodeFree(ctx, *in.Barcode, product.ID); err != nil {
				return nil, err
			}
		}
		product.Barcode = *in.Barcode
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.NewValidationError("category_id", "la categoría no existe")
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SellPrice != nil {
		product.SellPrice = *in.SellPrice
	}
	if err := validatePrices(product.CostPrice, product.SellPrice); err != nil {
		return nil, err
	}
	if in.ReorderLevel != nil {
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.Metadata != nil {
		product.Metadata = in.Metadata
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("sku", "el sku ya está en uso")
		}
		return nil, err
	}

	levels, err := uc.stocks.ListByProduct(ctx, id, actor.WarehouseID)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRef(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, category, levels)
	return &resp, nil
}

// Delete elimina un producto sin stock disponible. Con stock en cualquier
// bodega la eliminación se rechaza con conflicto.
func (uc *ProductUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !uc.checker.Can(actor.Role, access.PermProductDelete) {
		return domain.ErrForbidden
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.stocks.ProductHasAvailable(ctx, id)
	if err != nil {
		return err
	}
	if hasStock {
		return &domain.ConflictError{Message: "no se puede eliminar un producto con stock disponible"}
	}
	return uc.products.Delete(ctx, id)
}

func (uc *ProductUseCase) checkSKUFree(ctx context.Context, sku, selfID string) error {
	existing, err := uc.products.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewValidationError("sku", "el sku ya está en uso")
	}
	return nil
}

func (uc *ProductUseCase) checkBarcodeFree(ctx context.Context, barcode, selfID string) error {
	existing, err := uc.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewValidationError("barcode", "el código de barras ya está en uso")
	}
	return nil
}

func validatePrices(cost, sell decimal.Decimal) error {
	ve := domain.ValidationError{Fields: map[string][]string{}}
	if cost.IsNegative() {
		ve.Add("cost_price", "el precio de costo no puede ser negativo")
	}
	if sell.IsNegative() {
		ve.Add("sell_price", "el precio de venta no puede ser negativo")
	}
	if len(ve.Fields) > 0 {
		return &ve
	}
	return nil
}

func (uc *ProductUseCase) categoryRef(ctx context.Context, categoryID string) (*dto.CategoryRef, error) {
	if categoryID == "" {
		return nil, nil
	}
	category, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toCategoryRef(category), nil
}

// toProductResponses enriquece una página de productos resolviendo niveles de
// stock y categorías en dos consultas agrupadas, no una por producto.
func (uc *ProductUseCase) toProductResponses(ctx context.Context, actor access.Actor, products []*entity.Product) ([]dto.ProductResponse, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	var levelsByProduct map[string][]repository.WarehouseStock
	if len(ids) > 0 {
		var err error
		levelsByProduct, err = uc.stocks.ListByProducts(ctx, ids, actor.WarehouseID)
		if err != nil {
			return nil, err
		}
	}

	refs := map[string]*dto.CategoryRef{}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		ref, ok := refs[p.CategoryID]
		if !ok {
			var err error
			ref, err = uc.categoryRef(ctx, p.CategoryID)
			if err != nil {
				return nil, err
			}
			refs[p.CategoryID] = ref
		}
		out = append(out, toProductResponse(p, ref, levelsByProduct[p.ID]))
	}
	return out, nil
}

func toCategoryRef(category *entity.Category) *dto.CategoryRef {
	if category == nil {
		return nil
	}
	return &dto.CategoryRef{ID: category.ID, Name: category.Name, Path: category.Path}
}

func toProductResponse(p *entity.Product, category *dto.CategoryRef, ws []repository.WarehouseStock) dto.ProductResponse {
	summary := stock.Summarize(repository.Levels(ws))
	levels := make([]dto.StockLevelResponse, 0, len(ws))
	for _, w := range ws {
		levels = append(levels, dto.StockLevelResponse{
			Warehouse: dto.WarehouseRef{
				ID:   w.Level.WarehouseID,
				Name: w.WarehouseName,
				Code: w.WarehouseCode,
			},
			AvailableQty: w.Level.AvailableQty,
			ReservedQty:  w.Level.ReservedQty,
		})
	}
	return dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		Category:       category,
		Unit:           p.Unit,
		CostPrice:      p.CostPrice,
		SellPrice:      p.SellPrice,
		ReorderLevel:   p.ReorderLevel,
		Metadata:       p.Metadata,
		Description:    p.Description,
		Barcode:        p.Barcode,
		Status:         p.Status,
		TotalStock:     summary.TotalAvailable,
		ReservedStock:  summary.TotalReserved,
		AvailableStock: summary.NetAvailable,
		IsLowStock:     stock.IsLowStock(summary.TotalAvailable, p.ReorderLevel),
		IsOutOfStock:   stock.IsOutOfStock(summary.TotalAvailable),
		StockLevels:    levels,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
