package usecase

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/search/dto"
)

type comparator func(a, b model.Product) int

var comparators = map[string]comparator{
	"id":                 func(a, b model.Product) int { return strings.Compare(a.ID, b.ID) },
	"name":               func(a, b model.Product) int { return strings.Compare(a.Name, b.Name) },
	"description":        func(a, b model.Product) int { return strings.Compare(a.Description, b.Description) },
	"sku":                func(a, b model.Product) int { return strings.Compare(a.SKU, b.SKU) },
	"categoryId":         func(a, b model.Product) int { return strings.Compare(deref(a.CategoryID), deref(b.CategoryID)) },
	"price":              func(a, b model.Product) int { return cmp.Compare(a.Price, b.Price) },
	"discountPercentage": func(a, b model.Product) int { return cmp.Compare(a.DiscountPercentage, b.DiscountPercentage) },
	"finalPrice":         func(a, b model.Product) int { return cmp.Compare(a.FinalPrice(), b.FinalPrice()) },
	"createdAt":          func(a, b model.Product) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt":          func(a, b model.Product) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

// Sort orders items in place by field. A leading "-" sorts descending. Equal
// elements keep their relative order.
func Sort(items []model.Product, field string) error {
	desc := strings.HasPrefix(field, "-")
	name := strings.TrimPrefix(field, "-")

	compare, ok := comparators[name]
	if !ok {
		return apperror.BadRequest("cannot sort by %q", name)
	}
	if desc {
		asc := compare
		compare = func(a, b model.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(items, compare)
	return nil
}

// Paginate returns the 1-indexed page of items. A page below 1 is treated as
// the first page and a non-positive limit returns everything.
func Paginate[T any](items []T, page, limit int) ([]T, dto.Pagination) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		p := dto.Pagination{Total: total, Page: 1, Limit: total}
		if total > 0 {
			p.Pages = 1
		}
		return items, p
	}

	pages := (total + limit - 1) / limit
	p := dto.Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
	if page < pages {
		next := page + 1
		p.NextPage = &next
	}
	if page > 1 {
		prev := min(page-1, max(pages, 1))
		p.PrevPage = &prev
	}

	start := (page - 1) * limit
	if start >= total {
		return []T{}, p
	}
	end := min(start+limit, total)
	return items[start:end], p
}

// ParseAttributes decodes a JSON object of string pairs, as sent in the
// attributes query parameter.
func ParseAttributes(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var attrs map[string]string
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, apperror.Wrap(apperror.KindBadRequest, err, "attributes must be a JSON object of string values")
	}
	return attrs, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
