package repository

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/store"
)

type MemoryRepository struct {
	categories *store.Store[model.Category]
}

func NewMemoryRepository(db *memdb.DB) *MemoryRepository {
	return &MemoryRepository{categories: db.Categories}
}

func (r *MemoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	created, err := r.categories.Insert(*c)
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, apperror.AlreadyExists("category", c.ID)
		}
		return nil, err
	}
	return &created, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	c, ok := r.categories.Get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	if f == nil || f.ParentID == nil {
		return r.categories.All(), nil
	}

	parentID := *f.ParentID
	return r.categories.Filter(func(c model.Category) bool {
		if parentID == "" {
			return c.IsRoot()
		}
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

// Update returns (nil, nil) when id is unknown.
func (r *MemoryRepository) Update(ctx context.Context, id string, merge func(*model.Category) error) (*model.Category, error) {
	updated, err := r.categories.Update(id, func(cur model.Category) (model.Category, error) {
		if err := merge(&cur); err != nil {
			return cur, err
		}
		return cur, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.categories.Delete(id), nil
}
