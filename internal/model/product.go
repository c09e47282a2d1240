package model

import (
	"maps"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	CategoryID         *string          `json:"categoryId"`
	SKU                string           `json:"sku"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              float64          `json:"price"`
	DiscountPercentage float64          `json:"discountPercentage"`
	Images             []string         `json:"images"`
	Variants           []ProductVariant `json:"variants"`
}

type ProductVariant struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
	Price      *float64          `json:"price"` // overrides the product price when set
	SKU        string            `json:"sku"`
}

var hundred = decimal.NewFromInt(100)

// FinalPrice is price less the discount, rounded half-up to cents.
func (p Product) FinalPrice() float64 {
	discount := decimal.NewFromFloat(p.DiscountPercentage).Div(hundred)
	final := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(1).Sub(discount))
	f, _ := final.Round(2).Float64()
	return f
}

func (p Product) HasCategory(categoryID string) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}

func (p Product) Variant(id string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

func (p Product) Key() string { return p.ID }

func (p Product) WithKey(id string) Product {
	p.ID = id
	return p
}

func (p Product) Touched(at time.Time) Product {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = at
	}
	p.UpdatedAt = at
	return p
}

func (p Product) Clone() Product {
	p.CategoryID = cloneStringPtr(p.CategoryID)
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		variants := make([]ProductVariant, len(p.Variants))
		for i, v := range p.Variants {
			variants[i] = v.Clone()
		}
		p.Variants = variants
	}
	return p
}

func (v ProductVariant) Clone() ProductVariant {
	v.Attributes = maps.Clone(v.Attributes)
	v.Price = cloneFloatPtr(v.Price)
	return v
}

// MatchesAttributes reports whether every wanted pair is present with an equal value.
func (v ProductVariant) MatchesAttributes(want map[string]string) bool {
	if v.Attributes == nil {
		return false
	}
	for k, val := range want {
		if got, ok := v.Attributes[k]; !ok || got != val {
			return false
		}
	}
	return true
}
