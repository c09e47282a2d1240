package inventory

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// StockAdjustment computes the next state of a record. current is nil when no
// record exists for the key. Returning an error leaves the ledger untouched.
type StockAdjustment func(current *model.Inventory) (*model.Inventory, *model.InventoryMovement, error)

type Repository interface {
	GetByKey(ctx context.Context, key model.StockKey) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)

	// Core stock operations. The adjustment and the movement append happen
	// atomically with respect to other adjustments.
	AdjustStockWithMovement(ctx context.Context, key model.StockKey, adjust StockAdjustment) (*model.Inventory, error)

	// Movements / Audit
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error)
}
