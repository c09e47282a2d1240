package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/fekuna/omnipos-catalog-service/internal/search/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type searchUseCase struct {
	products product.Repository
	logger   logger.ZapLogger
}

func NewSearchUseCase(products product.Repository, log logger.ZapLogger) search.UseCase {
	return &searchUseCase{
		products: products,
		logger:   log,
	}
}

// Search matches term case-insensitively as a substring of name, description
// or sku. There is no ranking; store order is kept.
func (uc *searchUseCase) Search(ctx context.Context, term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.BadRequest("search term is required")
	}
	needle := strings.ToLower(term)

	all, err := uc.products.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]model.Product, 0)
	for _, p := range all {
		if containsFold(p.Name, needle) || containsFold(p.Description, needle) || containsFold(p.SKU, needle) {
			out = append(out, p)
		}
	}
	uc.logger.Debug("search", zap.String("term", term), zap.Int("hits", len(out)))
	return out, nil
}

func (uc *searchUseCase) Filter(ctx context.Context, criteria *dto.FilterCriteria) ([]model.Product, error) {
	all, err := uc.products.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return all, nil
	}
	return Apply(all, criteria), nil
}

func (uc *searchUseCase) Query(ctx context.Context, query *dto.Query) (*dto.Result, error) {
	items, err := uc.Filter(ctx, &query.Criteria)
	if err != nil {
		return nil, err
	}
	if query.Sort != "" {
		if err := Sort(items, query.Sort); err != nil {
			return nil, err
		}
	}

	page, pagination := Paginate(items, query.Page, query.Limit)
	return &dto.Result{Items: page, Pagination: pagination}, nil
}

// Apply keeps the products that pass every criterion, in input order.
// Criteria are checked as category, price range, discount, attributes.
func Apply(items []model.Product, c *dto.FilterCriteria) []model.Product {
	out := make([]model.Product, 0, len(items))
	for _, p := range items {
		if c.Category != "" && !p.HasCategory(c.Category) {
			continue
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if c.Discount && p.DiscountPercentage <= 0 {
			continue
		}
		if len(c.Attributes) > 0 && !anyVariantMatches(p, c.Attributes) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anyVariantMatches(p model.Product, attrs map[string]string) bool {
	for _, v := range p.Variants {
		if v.MatchesAttributes(attrs) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
