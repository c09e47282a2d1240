package dto

// UpsertInventoryInput overwrites Quantity; nil optional fields keep the
// stored value, or take defaults for a new record.
type UpsertInventoryInput struct {
	ProductID         string
	VariantID         *string
	Quantity          int
	ReservedQuantity  *int
	LowStockThreshold *int
}

type StockInput struct {
	ProductID   string
	VariantID   *string
	Quantity    int
	ReferenceID string // order id, cart id...
	Reason      string
}
