package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo             inventory.Repository
	defaultThreshold int
	logger           logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, defaultThreshold int, log logger.ZapLogger) inventory.UseCase {
	if defaultThreshold < 0 {
		defaultThreshold = model.DefaultLowStockThreshold
	}
	return &inventoryUseCase{
		repo:             repo,
		defaultThreshold: defaultThreshold,
		logger:           log,
	}
}

func (uc *inventoryUseCase) GetInventory(ctx context.Context, productID string, variantID *string) (*model.Inventory, error) {
	key := model.NewStockKey(productID, variantID)
	inv, err := uc.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, notFound(key)
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context) ([]model.Inventory, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{LowStock: true})
}

func (uc *inventoryUseCase) UpsertInventory(ctx context.Context, input *dto.UpsertInventoryInput) (*model.Inventory, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	key := model.NewStockKey(input.ProductID, input.VariantID)
	inv, err := uc.repo.AdjustStockWithMovement(ctx, key, func(current *model.Inventory) (*model.Inventory, *model.InventoryMovement, error) {
		var next model.Inventory
		if current == nil {
			next = model.Inventory{
				ProductID:         key.ProductID,
				VariantID:         key.VariantPtr(),
				LowStockThreshold: uc.defaultThreshold,
			}
		} else {
			next = *current
		}
		before := next

		next.Quantity = input.Quantity
		if input.ReservedQuantity != nil {
			next.ReservedQuantity = *input.ReservedQuantity
		}
		if input.LowStockThreshold != nil {
			next.LowStockThreshold = *input.LowStockThreshold
		}

		notes := "stock level set"
		if next.ReservedQuantity > next.Quantity {
			// only reachable through a preserved reservation
			uc.logger.Warn("reservation exceeds new quantity, clamping",
				zap.String("product_id", key.ProductID),
				zap.String("variant_id", key.VariantID),
				zap.Int("reserved", next.ReservedQuantity),
				zap.Int("quantity", next.Quantity),
			)
			notes = fmt.Sprintf("reservation clamped from %d to %d", next.ReservedQuantity, next.Quantity)
			next.ReservedQuantity = next.Quantity
		}

		return &next, movement(model.MovementUpsert, before, next, next.Quantity-before.Quantity, "", notes), nil
	})
	metrics.ObserveInventory("upsert", err)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func validateUpsert(input *dto.UpsertInventoryInput) error {
	if input.ProductID == "" {
		return apperror.BadRequest("productId is required")
	}
	if input.Quantity < 0 {
		return apperror.BadRequest("quantity must not be negative")
	}
	if input.ReservedQuantity != nil {
		if *input.ReservedQuantity < 0 {
			return apperror.BadRequest("reservedQuantity must not be negative")
		}
		if *input.ReservedQuantity > input.Quantity {
			return apperror.BadRequest("reservedQuantity %d exceeds quantity %d", *input.ReservedQuantity, input.Quantity)
		}
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		return apperror.BadRequest("lowStockThreshold must not be negative")
	}
	return nil
}

func (uc *inventoryUseCase) ReserveStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error) {
	if err := validateStock(input); err != nil {
		return nil, err
	}

	key := model.NewStockKey(input.ProductID, input.VariantID)
	inv, err := uc.repo.AdjustStockWithMovement(ctx, key, func(current *model.Inventory) (*model.Inventory, *model.InventoryMovement, error) {
		if current == nil {
			return nil, nil, notFound(key)
		}
		if current.AvailableQuantity() < input.Quantity {
			return nil, nil, apperror.New(apperror.KindInsufficientInventory,
				"insufficient inventory: requested %d, available %d", input.Quantity, current.AvailableQuantity())
		}

		next := *current
		next.ReservedQuantity += input.Quantity
		return &next, movement(model.MovementReserve, *current, next, 0, input.ReferenceID, input.Reason), nil
	})
	metrics.ObserveInventory("reserve", err)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ReleaseStock frees up to Quantity reserved units; releasing more than is
// reserved is clamped rather than rejected.
func (uc *inventoryUseCase) ReleaseStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error) {
	if err := validateStock(input); err != nil {
		return nil, err
	}

	key := model.NewStockKey(input.ProductID, input.VariantID)
	inv, err := uc.repo.AdjustStockWithMovement(ctx, key, func(current *model.Inventory) (*model.Inventory, *model.InventoryMovement, error) {
		if current == nil {
			return nil, nil, notFound(key)
		}
		next := release(*current, input.Quantity)
		return &next, movement(model.MovementRelease, *current, next, 0, input.ReferenceID, input.Reason), nil
	})
	metrics.ObserveInventory("release", err)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CommitStock releases the reservation and deducts the units permanently.
// Quantity never drops below zero; a shortfall is logged and noted on the
// movement.
func (uc *inventoryUseCase) CommitStock(ctx context.Context, input *dto.StockInput) (*model.Inventory, error) {
	if err := validateStock(input); err != nil {
		return nil, err
	}

	key := model.NewStockKey(input.ProductID, input.VariantID)
	inv, err := uc.repo.AdjustStockWithMovement(ctx, key, func(current *model.Inventory) (*model.Inventory, *model.InventoryMovement, error) {
		if current == nil {
			return nil, nil, notFound(key)
		}

		next := release(*current, input.Quantity)
		notes := input.Reason
		next.Quantity -= input.Quantity
		if next.Quantity < 0 {
			shortfall := -next.Quantity
			uc.logger.Warn("commit exceeds stock on hand, flooring at zero",
				zap.String("product_id", key.ProductID),
				zap.String("variant_id", key.VariantID),
				zap.Int("requested", input.Quantity),
				zap.Int("shortfall", shortfall),
			)
			notes = strings.TrimSpace(fmt.Sprintf("%s (shortfall %d)", notes, shortfall))
			next.Quantity = 0
		}

		return &next, movement(model.MovementCommit, *current, next, next.Quantity-current.Quantity, input.ReferenceID, notes), nil
	})
	metrics.ObserveInventory("commit", err)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func release(inv model.Inventory, qty int) model.Inventory {
	inv.ReservedQuantity -= min(inv.ReservedQuantity, qty)
	return inv
}

func validateStock(input *dto.StockInput) error {
	if input.ProductID == "" {
		return apperror.BadRequest("productId is required")
	}
	if input.Quantity <= 0 {
		return apperror.BadRequest("quantity must be positive")
	}
	return nil
}

func movement(kind model.MovementType, before, after model.Inventory, change int, referenceID, notes string) *model.InventoryMovement {
	m := &model.InventoryMovement{
		MovementType:   kind,
		QuantityChange: change,
		QuantityBefore: before.Quantity,
		QuantityAfter:  after.Quantity,
		ReservedBefore: before.ReservedQuantity,
		ReservedAfter:  after.ReservedQuantity,
		Notes:          notes,
	}
	if referenceID != "" {
		m.ReferenceID = &referenceID
	}
	return m
}

func notFound(key model.StockKey) error {
	if key.VariantID != "" {
		return apperror.New(apperror.KindNotFound,
			"no inventory record for product %q variant %q", key.ProductID, key.VariantID)
	}
	return apperror.New(apperror.KindNotFound, "no inventory record for product %q", key.ProductID)
}
