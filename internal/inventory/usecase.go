package inventory

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	GetInventory(ctx context.Context, productID string, variantID *string) (*model.Inventory, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)
	ListLowStock(ctx context.Context) ([]model.Inventory, error)
	UpsertInventory(ctx context.Context, input *dto.UpsertInventoryInput) (*model.Inventory, error)
	ReserveStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error)
	ReleaseStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error)
	CommitStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error)
}
