package repository

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/store"
)

type MemoryRepository struct {
	records   *store.Store[model.Inventory]
	movements *store.Store[model.InventoryMovement]

	// guards key lookup + write so each (product, variant) has one record
	mu sync.Mutex
}

func NewMemoryRepository(db *memdb.DB) *MemoryRepository {
	return &MemoryRepository{
		records:   db.Inventory,
		movements: db.Movements,
	}
}

func (r *MemoryRepository) GetByKey(ctx context.Context, key model.StockKey) (*model.Inventory, error) {
	inv, ok := r.findByKey(key)
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *MemoryRepository) findByKey(key model.StockKey) (model.Inventory, bool) {
	return r.records.Find(func(i model.Inventory) bool {
		return i.StockKey() == key
	})
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	if f == nil {
		return r.records.All(), nil
	}
	return r.records.Filter(func(i model.Inventory) bool {
		if f.ProductID != "" && i.ProductID != f.ProductID {
			return false
		}
		if f.LowStock && !i.IsLowStock() {
			return false
		}
		return true
	}), nil
}

func (r *MemoryRepository) AdjustStockWithMovement(ctx context.Context, key model.StockKey, adjust inventory.StockAdjustment) (*model.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current *model.Inventory
	if inv, ok := r.findByKey(key); ok {
		current = &inv
	}

	next, movement, err := adjust(current)
	if err != nil {
		return nil, err
	}

	var saved model.Inventory
	if current == nil {
		saved, err = r.records.Insert(*next)
		if err != nil {
			return nil, err
		}
	} else {
		saved, err = r.records.Update(current.ID, func(model.Inventory) (model.Inventory, error) {
			return *next, nil
		})
		if err != nil {
			return nil, err
		}
	}

	if movement != nil {
		movement.InventoryID = saved.ID
		movement.ProductID = saved.ProductID
		movement.VariantID = saved.VariantID
		if _, err := r.movements.Insert(*movement); err != nil {
			return nil, err
		}
	}
	return &saved, nil
}

func (r *MemoryRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, error) {
	if f == nil {
		return r.movements.All(), nil
	}
	return r.movements.Filter(func(m model.InventoryMovement) bool {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			return false
		}
		if f.MovementType != "" && string(m.MovementType) != f.MovementType {
			return false
		}
		return true
	}), nil
}
