package dto

type InventoryFilters struct {
	ProductID string
	LowStock  bool // If true, keep only records with available < threshold
}

type MovementFilters struct {
	ProductID    string
	MovementType string
}
