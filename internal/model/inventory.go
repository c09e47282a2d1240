package model

import "time"

const DefaultLowStockThreshold = 5

// StockKey identifies an inventory record. An empty VariantID tracks the base product.
type StockKey struct {
	ProductID string
	VariantID string
}

func NewStockKey(productID string, variantID *string) StockKey {
	k := StockKey{ProductID: productID}
	if variantID != nil {
		k.VariantID = *variantID
	}
	return k
}

func (k StockKey) VariantPtr() *string {
	if k.VariantID == "" {
		return nil
	}
	v := k.VariantID
	return &v
}

type Inventory struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	VariantID         *string   `json:"variantId"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

func (i Inventory) StockKey() StockKey {
	return NewStockKey(i.ProductID, i.VariantID)
}

func (i Inventory) AvailableQuantity() int {
	return i.Quantity - i.ReservedQuantity
}

func (i Inventory) InStock() bool {
	return i.AvailableQuantity() > 0
}

func (i Inventory) IsLowStock() bool {
	return i.AvailableQuantity() < i.LowStockThreshold
}

func (i Inventory) Key() string { return i.ID }

func (i Inventory) WithKey(id string) Inventory {
	i.ID = id
	return i
}

func (i Inventory) Touched(at time.Time) Inventory {
	i.LastUpdated = at
	return i
}

func (i Inventory) Clone() Inventory {
	i.VariantID = cloneStringPtr(i.VariantID)
	return i
}

type MovementType string

const (
	MovementUpsert  MovementType = "upsert"
	MovementReserve MovementType = "reserve"
	MovementRelease MovementType = "release"
	MovementCommit  MovementType = "commit"
)

type InventoryMovement struct {
	ID             string       `json:"id"`
	InventoryID    string       `json:"inventoryId"`
	ProductID      string       `json:"productId"`
	VariantID      *string      `json:"variantId"`
	MovementType   MovementType `json:"movementType"`
	QuantityChange int          `json:"quantityChange"`
	QuantityBefore int          `json:"quantityBefore"`
	QuantityAfter  int          `json:"quantityAfter"`
	ReservedBefore int          `json:"reservedBefore"`
	ReservedAfter  int          `json:"reservedAfter"`
	ReferenceID    *string      `json:"referenceId"`
	Notes          string       `json:"notes"`
	CreatedAt      time.Time    `json:"createdAt"`
}

func (m InventoryMovement) Key() string { return m.ID }

func (m InventoryMovement) WithKey(id string) InventoryMovement {
	m.ID = id
	return m
}

func (m InventoryMovement) Touched(at time.Time) InventoryMovement {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = at
	}
	return m
}

func (m InventoryMovement) Clone() InventoryMovement {
	m.VariantID = cloneStringPtr(m.VariantID)
	m.ReferenceID = cloneStringPtr(m.ReferenceID)
	return m
}
