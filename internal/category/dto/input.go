package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CreateCategoryInput struct {
	ID          string // optional, assigned when empty
	ParentID    *string
	Name        string
	Description string
}

// UpdateCategoryInput carries only the fields the caller supplied. A set
// ParentID with a nil or empty value detaches the category into a root.
type UpdateCategoryInput struct {
	ID          string
	ParentID    model.OptionalString
	Name        *string
	Description *string
}
