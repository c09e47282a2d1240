package dto

import "time"

type LowStockEntry struct {
	InventoryID    string    `json:"inventoryId"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	SKU            string    `json:"sku"`
	CurrentStock   int       `json:"currentStock"`
	AvailableStock int       `json:"availableStock"`
	Threshold      int       `json:"threshold"`
	LastUpdated    time.Time `json:"lastUpdated"`

	// Set only for variant records whose variant still exists
	VariantID   *string           `json:"variantId,omitempty"`
	VariantName string            `json:"variantName,omitempty"`
	VariantSKU  string            `json:"variantSku,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type InventorySummary struct {
	TotalProducts       int `json:"totalProducts"`
	TotalInventoryItems int `json:"totalInventoryItems"`
	LowStockItems       int `json:"lowStockItems"`
	OutOfStockItems     int `json:"outOfStockItems"`
	TotalItemsInStock   int `json:"totalItemsInStock"`
	TotalReservedItems  int `json:"totalReservedItems"`
	TotalAvailableItems int `json:"totalAvailableItems"`

	// Records whose product has been deleted; excluded from the figures above.
	OrphanedRecords int `json:"orphanedRecords"`
}

type CategoryShare struct {
	CategoryID   string `json:"categoryId"`
	ProductCount int    `json:"productCount"`
	Percentage   string `json:"percentage"`
}
