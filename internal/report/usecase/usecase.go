package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/report"
	"github.com/fekuna/omnipos-catalog-service/internal/report/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type reportUseCase struct {
	products  product.Repository
	inventory inventory.UseCase
	logger    logger.ZapLogger
}

func NewReportUseCase(products product.Repository, inv inventory.UseCase, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		products:  products,
		inventory: inv,
		logger:    log,
	}
}

func (uc *reportUseCase) productIndex(ctx context.Context) ([]model.Product, map[string]model.Product, error) {
	all, err := uc.products.FindAll(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]model.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	return all, byID, nil
}

// LowStockReport joins low-stock records with their product. Records of
// deleted products are skipped.
func (uc *reportUseCase) LowStockReport(ctx context.Context) ([]dto.LowStockEntry, error) {
	records, err := uc.inventory.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	_, byID, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LowStockEntry, 0, len(records))
	for _, rec := range records {
		p, ok := byID[rec.ProductID]
		if !ok {
			uc.logger.Debug("skipping orphaned inventory record", zap.String("inventory_id", rec.ID))
			continue
		}

		entry := dto.LowStockEntry{
			InventoryID:    rec.ID,
			ProductID:      rec.ProductID,
			ProductName:    p.Name,
			SKU:            p.SKU,
			CurrentStock:   rec.Quantity,
			AvailableStock: rec.AvailableQuantity(),
			Threshold:      rec.LowStockThreshold,
			LastUpdated:    rec.LastUpdated,
		}
		if rec.VariantID != nil {
			if v, ok := p.Variant(*rec.VariantID); ok {
				entry.VariantID = rec.VariantID
				entry.VariantName = v.Name
				entry.VariantSKU = v.SKU
				entry.Attributes = v.Attributes
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (uc *reportUseCase) InventorySummary(ctx context.Context) (*dto.InventorySummary, error) {
	records, err := uc.inventory.ListInventory(ctx, &invdto.InventoryFilters{})
	if err != nil {
		return nil, err
	}
	all, byID, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.InventorySummary{TotalProducts: len(all)}
	for _, rec := range records {
		if _, ok := byID[rec.ProductID]; !ok {
			summary.OrphanedRecords++
			continue
		}
		summary.TotalInventoryItems++
		if rec.IsLowStock() {
			summary.LowStockItems++
		}
		if rec.Quantity == 0 {
			summary.OutOfStockItems++
		}
		summary.TotalItemsInStock += rec.Quantity
		summary.TotalReservedItems += rec.ReservedQuantity
		summary.TotalAvailableItems += rec.AvailableQuantity()
	}
	return summary, nil
}

var hundred = decimal.NewFromInt(100)

// CategoryDistribution counts categorised products per category in
// first-seen order. Percentages are of all products, uncategorised included.
func (uc *reportUseCase) CategoryDistribution(ctx context.Context) ([]dto.CategoryShare, error) {
	all, err := uc.products.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range all {
		if p.CategoryID == nil {
			continue
		}
		id := *p.CategoryID
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	total := decimal.NewFromInt(int64(len(all)))
	out := make([]dto.CategoryShare, 0, len(order))
	for _, id := range order {
		pct := decimal.NewFromInt(int64(counts[id])).Mul(hundred).Div(total)
		out = append(out, dto.CategoryShare{
			CategoryID:   id,
			ProductCount: counts[id],
			Percentage:   pct.StringFixed(2),
		})
	}
	return out, nil
}
