package search

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/search/dto"
)

type UseCase interface {
	Search(ctx context.Context, term string) ([]model.Product, error)
	Filter(ctx context.Context, criteria *dto.FilterCriteria) ([]model.Product, error)

	// Query filters, sorts and paginates in one call.
	Query(ctx context.Context, query *dto.Query) (*dto.Result, error)
}
