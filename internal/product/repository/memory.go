package repository

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/store"
)

type MemoryRepository struct {
	products *store.Store[model.Product]
}

func NewMemoryRepository(db *memdb.DB) *MemoryRepository {
	return &MemoryRepository{products: db.Products}
}

func (r *MemoryRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	created, err := r.products.Insert(*p)
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, apperror.AlreadyExists("product", p.ID)
		}
		return nil, err
	}
	return &created, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := r.products.Get(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	if f == nil || f.CategoryID == "" {
		return r.products.All(), nil
	}
	return r.products.Filter(func(p model.Product) bool {
		return p.HasCategory(f.CategoryID)
	}), nil
}

// Update returns (nil, nil) when id is unknown.
func (r *MemoryRepository) Update(ctx context.Context, id string, merge func(*model.Product) error) (*model.Product, error) {
	updated, err := r.products.Update(id, func(cur model.Product) (model.Product, error) {
		err := merge(&cur)
		return cur, err
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
	return r.products.Delete(id), nil
}

func (r *MemoryRepository) ExistsByCategory(ctx context.Context, categoryID string) (bool, error) {
	return r.products.Any(func(p model.Product) bool {
		return p.HasCategory(categoryID)
	}), nil
}
