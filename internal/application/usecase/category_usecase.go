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
	"github.com/invorya/inventario-api/pkg/slug"
	"github.com/invorya/inventario-api/pkg/validator"
)

// CategoryUseCase mantiene el árbol de categorías: deriva slug, level y path
// al crear, y los recalcula en cascada sobre todo el subárbol al renombrar o
// mover un nodo. La cascada se aplica en una transacción para que los
// lectores nunca observen rutas intermedias.
type CategoryUseCase struct {
	repo    repository.CategoryRepository
	tx      repository.CategoryTxRunner
	checker access.Checker
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx repository.CategoryTxRunner, checker access.Checker) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, checker: checker}
}

// Create crea una categoría con level y path derivados del padre.
func (uc *CategoryUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermCategoryCreate) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	sl := slug.Make(in.Name)
	parentID := ""
	level := 0
	path := sl
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := uc.repo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		parentID = parent.ID
		level = parent.Level + 1
		path = parent.Path + "/" + sl
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    parentID,
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Level:       level,
		Path:        path,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("name", "ya existe una categoría con esa ruta")
		}
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// GetByID devuelve la categoría con sus hijos directos y conteo de productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.CategoryResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermCategoryView) {
		return nil, domain.ErrForbidden
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	children, err := uc.repo.ListByParent(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	count, err := uc.repo.CountProducts(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	resp.Children = toCategoryResponses(children, nil)
	resp.ProductsCount = &count
	return &resp, nil
}

// Update renombra, mueve o describe una categoría. Rechaza ciclos
// (el nuevo padre no puede ser la propia categoría ni un descendiente) y
// propaga level/path a todo el subárbol dentro de una transacción.
func (uc *CategoryUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermCategoryEdit) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	newParentID := category.ParentID
	if in.ParentID != nil {
		newParentID = *in.ParentID
	}
	if newParentID != "" && newParentID != category.ParentID {
		cycle, err := uc.reachesCategory(ctx, category.ID, newParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, domain.NewValidationError("parent_id", "el padre no puede ser la propia categoría ni un descendiente")
		}
	}

	nameChanged := in.Name != nil && *in.Name != category.Name
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if nameChanged {
		category.Slug = slug.Make(category.Name)
	}
	category.ParentID = newParentID

	// Recalcular level/path del nodo y del subárbol solo si cambió el nombre
	// o se envió parent_id (aunque sea el mismo valor, paridad con la API previa).
	var cascade []repository.PathUpdate
	if nameChanged || in.ParentID != nil {
		if newParentID != "" {
			parent, err := uc.repo.GetByID(ctx, newParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrNotFound
			}
			category.Level = parent.Level + 1
			category.Path = parent.Path + "/" + category.Slug
		} else {
			category.Level = 0
			category.Path = category.Slug
		}
		cascade, err = uc.subtreeUpdates(ctx, category)
		if err != nil {
			return nil, err
		}
	}
	category.UpdatedAt = time.Now()

	err = uc.tx.RunCategories(ctx, func(txRepo repository.CategoryRepository) error {
		if err := txRepo.Update(ctx, category); err != nil {
			return err
		}
		if len(cascade) > 0 {
			return txRepo.UpdatePaths(ctx, cascade)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("name", "ya existe una categoría con esa ruta")
		}
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// Delete elimina una categoría hoja sin productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !uc.checker.Can(actor.Role, access.PermCategoryDelete) {
		return domain.ErrForbidden
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	products, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return &domain.ConflictError{Message: "no se puede eliminar una categoría con productos"}
	}
	children, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return &domain.ConflictError{Message: "no se puede eliminar una categoría con subcategorías"}
	}
	return uc.repo.Delete(ctx, id)
}

// List devuelve las categorías como árbol (tree=true) o como lista plana
// ordenada por path, donde cada padre precede a sus descendientes.
func (uc *CategoryUseCase) List(ctx context.Context, actor access.Actor, q dto.ListCategoriesQuery) ([]dto.CategoryResponse, error) {
	if !uc.checker.Can(actor.Role, access.PermCategoryView) {
		return nil, domain.ErrForbidden
	}
	f := repository.CategoryFilter{Search: q.Search, Level: q.Level}

	counts, err := uc.repo.ProductCounts(ctx)
	if err != nil {
		return nil, err
	}

	if q.Tree {
		roots, err := uc.repo.ListRoots(ctx, f)
		if err != nil {
			return nil, err
		}
		if err := uc.attachChildren(ctx, roots); err != nil {
			return nil, err
		}
		return toCategoryResponses(roots, counts), nil
	}

	categories, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories, counts), nil
}

// reachesCategory camina la cadena de ancestros desde `from` hacia la raíz y
// reporta si encuentra `target`. El recorrido se acota al total de categorías
// como salvaguarda frente a datos corruptos con ciclos preexistentes.
func (uc *CategoryUseCase) reachesCategory(ctx context.Context, target, from string) (bool, error) {
	limit, err := uc.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	current := from
	for steps := 0; current != "" && steps <= limit; steps++ {
		if current == target {
			return true, nil
		}
		node, err := uc.repo.GetByID(ctx, current)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, nil
		}
		current = node.ParentID
	}
	return false, nil
}

// subtreeUpdates calcula los nuevos (level, path) de todos los descendientes
// de root con un recorrido iterativo (pila explícita, sin recursión), usando
// los valores ya recalculados del padre. No persiste nada: el resultado se
// aplica como un lote único dentro de la transacción.
func (uc *CategoryUseCase) subtreeUpdates(ctx context.Context, root *entity.Category) ([]repository.PathUpdate, error) {
	type node struct {
		id    string
		level int
		path  string
	}
	var updates []repository.PathUpdate
	stack := []node{{root.ID, root.Level, root.Path}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children, err := uc.repo.ListByParent(ctx, n.id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			level := n.level + 1
			path := n.path + "/" + child.Slug
			updates = append(updates, repository.PathUpdate{ID: child.ID, Level: level, Path: path})
			stack = append(stack, node{child.ID, level, path})
		}
	}
	return updates, nil
}

// attachChildren carga los hijos de cada nodo hasta agotar el árbol, con una
// cola explícita. Termina en cualquier árbol finito: cada nodo entra a la
// cola una sola vez.
func (uc *CategoryUseCase) attachChildren(ctx context.Context, roots []*entity.Category) error {
	queue := make([]*entity.Category, len(roots))
	copy(queue, roots)
	for i := 0; i < len(queue); i++ {
		children, err := uc.repo.ListByParent(ctx, queue[i].ID)
		if err != nil {
			return err
		}
		queue[i].Children = children
		queue = append(queue, children...)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Level:       c.Level,
		Path:        c.Path,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentID != "" {
		parentID := c.ParentID
		resp.ParentID = &parentID
	}
	return resp
}

func toCategoryResponses(categories []*entity.Category, counts map[string]int) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp := toCategoryResponse(c)
		if counts != nil {
			n := counts[c.ID]
			resp.ProductsCount = &n
		}
		if len(c.Children) > 0 {
			resp.Children = toCategoryResponses(c.Children, counts)
		}
		out = append(out, resp)
	}
	return out
}
