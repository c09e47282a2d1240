package report

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/report/dto"
)

type UseCase interface {
	LowStockReport(ctx context.Context) ([]dto.LowStockEntry, error)
	InventorySummary(ctx context.Context) (*dto.InventorySummary, error)
	CategoryDistribution(ctx context.Context) ([]dto.CategoryShare, error)
}
