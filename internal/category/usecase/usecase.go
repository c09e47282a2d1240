package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo     category.Repository
	products product.Repository
	logger   logger.ZapLogger

	// shared with product writes so guards and writes see the same catalog
	mu sync.Locker
}

func NewCategoryUseCase(repo category.Repository, products product.Repository, lock sync.Locker, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		products: products,
		logger:   log,
		mu:       lock,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	parentID := normalize(input.ParentID)
	if parentID != nil {
		parent, err := uc.repo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.InvalidReference("parentId", *parentID)
		}
	}

	cat, err := uc.repo.Create(ctx, &model.Category{
		BaseModel:   model.BaseModel{ID: input.ID},
		ParentID:    parentID,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("category created", zap.String("category_id", cat.ID))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) GetSubcategories(ctx context.Context, parentID string) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, &dto.CategoryFilters{ParentID: &parentID})
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if input.ParentID.Set {
		if parentID := input.ParentID.Normalized(); parentID != nil {
			if err := uc.validateParent(ctx, input.ID, *parentID); err != nil {
				return nil, err
			}
		}
	}

	cat, err := uc.repo.Update(ctx, input.ID, func(c *model.Category) error {
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.Description != nil {
			c.Description = *input.Description
		}
		if input.ParentID.Set {
			c.ParentID = input.ParentID.Normalized()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category", input.ID)
	}
	return cat, nil
}

// validateParent rejects self-parenting, dangling parents and any parent
// whose ancestor chain already contains id.
func (uc *categoryUseCase) validateParent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return apperror.New(apperror.KindSelfParent, "category cannot be its own parent")
	}

	all, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return err
	}
	byID := make(map[string]model.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	if _, ok := byID[parentID]; !ok {
		return apperror.InvalidReference("parentId", parentID)
	}

	seen := make(map[string]bool)
	for cur := parentID; cur != ""; {
		if cur == id {
			return apperror.New(apperror.KindSelfParent,
				"moving category under %q would create a cycle", parentID)
		}
		if seen[cur] {
			uc.logger.Warn("existing cycle found in category tree", zap.String("category_id", cur))
			break
		}
		seen[cur] = true

		c, ok := byID[cur]
		if !ok || c.ParentID == nil {
			break
		}
		cur = *c.ParentID
	}
	return nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperror.NotFound("category", id)
	}

	children, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{ParentID: &id})
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return apperror.New(apperror.KindHasDependents,
			"cannot delete category with subcategories: delete or reassign them first")
	}

	hasProducts, err := uc.products.ExistsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return apperror.New(apperror.KindHasDependents,
			"cannot delete category with associated products: delete or reassign them first")
	}

	if _, err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

// GetHierarchy builds the forest from a parent index created in one pass.
func (uc *categoryUseCase) GetHierarchy(ctx context.Context) ([]*model.CategoryNode, error) {
	all, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*model.CategoryNode, len(all))
	childIDs := make(map[string][]string, len(all))
	roots := make([]*model.CategoryNode, 0)

	for _, c := range all {
		nodes[c.ID] = &model.CategoryNode{Category: c, Children: []*model.CategoryNode{}}
		if c.IsRoot() {
			roots = append(roots, nodes[c.ID])
		} else {
			childIDs[*c.ParentID] = append(childIDs[*c.ParentID], c.ID)
		}
	}

	for parentID, ids := range childIDs {
		parent, ok := nodes[parentID]
		if !ok {
			continue
		}
		for _, id := range ids {
			parent.Children = append(parent.Children, nodes[id])
		}
	}

	return roots, nil
}

func normalize(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
