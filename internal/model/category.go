package model

import "time"

type Category struct {
	BaseModel
	ParentID    *string `json:"parentId"` // nil for roots
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// CategoryNode is a category annotated with its subtree, as returned by the hierarchy view.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

func (c Category) Key() string { return c.ID }

func (c Category) WithKey(id string) Category {
	c.ID = id
	return c
}

func (c Category) Touched(at time.Time) Category {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = at
	}
	c.UpdatedAt = at
	return c
}

func (c Category) Clone() Category {
	c.ParentID = cloneStringPtr(c.ParentID)
	return c
}

func (c Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
