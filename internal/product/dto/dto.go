package dto

type ProductFilters struct {
	CategoryID string
}
