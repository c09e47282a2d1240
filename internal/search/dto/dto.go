package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

// FilterCriteria options are AND-composed; zero values disable a filter.
type FilterCriteria struct {
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	Discount   bool
	Attributes map[string]string
}

type Query struct {
	Criteria FilterCriteria
	Sort     string // field name, "-" prefix for descending
	Page     int
	Limit    int
}

type Pagination struct {
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
	Pages    int  `json:"pages"`
	NextPage *int `json:"nextPage,omitempty"`
	PrevPage *int `json:"prevPage,omitempty"`
}

type Result struct {
	Items      []model.Product
	Pagination Pagination
}
