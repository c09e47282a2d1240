package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type VariantInput struct {
	ID         string
	Name       string
	Attributes map[string]string
	Price      *float64
	SKU        string
	Inventory  *int // creates or overwrites the variant's stock record when set
}

type CreateProductInput struct {
	ID                 string
	CategoryID         *string
	SKU                string
	Name               string
	Description        string
	Price              float64
	DiscountPercentage float64
	Images             []string
	Variants           []VariantInput
	Inventory          *int
}

// UpdateProductInput holds only supplied fields; nil means keep the stored value.
type UpdateProductInput struct {
	ID                 string
	CategoryID         model.OptionalString
	SKU                *string
	Name               *string
	Description        *string
	Price              *float64
	DiscountPercentage *float64
	Images             *[]string
	Variants           *[]VariantInput
	Inventory          *int
}

type CreateVariantInput struct {
	ProductID string
	VariantInput
}
