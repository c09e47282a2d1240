package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	Update(ctx context.Context, id string, merge func(*model.Product) error) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)

	// Used by the category delete guard
	ExistsByCategory(ctx context.Context, categoryID string) (bool, error)
}
