package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	Update(ctx context.Context, id string, merge func(*model.Category) error) (*model.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}
