package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	invRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	invUseCase "github.com/fekuna/omnipos-catalog-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/report"
	"github.com/fekuna/omnipos-catalog-service/internal/report/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        *memdb.DB
	inventory inventory.UseCase
	uc        report.UseCase
}

func newFixture() *fixture {
	db := memdb.New()
	inv := invUseCase.NewInventoryUseCase(invRepoPkg.NewMemoryRepository(db), model.DefaultLowStockThreshold, logger.NewNop())
	return &fixture{
		db:        db,
		inventory: inv,
		uc:        NewReportUseCase(prodRepoPkg.NewMemoryRepository(db), inv, logger.NewNop()),
	}
}

func (f *fixture) product(t *testing.T, p model.Product) model.Product {
	t.Helper()
	created, err := f.db.Products.Insert(p)
	require.NoError(t, err)
	return created
}

func (f *fixture) stock(t *testing.T, productID string, variantID *string, qty int, reserved int) {
	t.Helper()
	_, err := f.inventory.UpsertInventory(context.Background(), &invdto.UpsertInventoryInput{
		ProductID:        productID,
		VariantID:        variantID,
		Quantity:         qty,
		ReservedQuantity: &reserved,
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestCategoryDistribution(t *testing.T) {
	f := newFixture()
	f.product(t, model.Product{Name: "one", CategoryID: strPtr("c1")})
	f.product(t, model.Product{Name: "two", CategoryID: strPtr("c2")})
	f.product(t, model.Product{Name: "three", CategoryID: strPtr("c1")})

	got, err := f.uc.CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.CategoryShare{
		{CategoryID: "c1", ProductCount: 2, Percentage: "66.67"},
		{CategoryID: "c2", ProductCount: 1, Percentage: "33.33"},
	}, got)
}

func TestCategoryDistribution_UncategorisedCountTowardsTotal(t *testing.T) {
	f := newFixture()
	f.product(t, model.Product{Name: "one", CategoryID: strPtr("c1")})
	f.product(t, model.Product{Name: "loose"})

	got, err := f.uc.CategoryDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "50.00", got[0].Percentage)

	empty, err := newFixture().uc.CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestLowStockReport_JoinsAndSkipsOrphans(t *testing.T) {
	f := newFixture()
	shirt := f.product(t, model.Product{
		Name: "Shirt",
		SKU:  "SH",
		Variants: []model.ProductVariant{
			{ID: "v-red", Name: "Red", SKU: "SH-R", Attributes: map[string]string{"color": "red"}},
		},
	})
	mug := f.product(t, model.Product{Name: "Mug", SKU: "MG"})

	f.stock(t, shirt.ID, nil, 100, 0)           // healthy
	f.stock(t, shirt.ID, strPtr("v-red"), 6, 3) // available 3
	f.stock(t, mug.ID, nil, 2, 0)               // available 2
	f.stock(t, "deleted-product", nil, 1, 0)    // orphan

	got, err := f.uc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, shirt.ID, got[0].ProductID)
	assert.Equal(t, "Shirt", got[0].ProductName)
	assert.Equal(t, 6, got[0].CurrentStock)
	assert.Equal(t, 3, got[0].AvailableStock)
	assert.Equal(t, 5, got[0].Threshold)
	require.NotNil(t, got[0].VariantID)
	assert.Equal(t, "v-red", *got[0].VariantID)
	assert.Equal(t, "SH-R", got[0].VariantSKU)
	assert.Equal(t, map[string]string{"color": "red"}, got[0].Attributes)

	assert.Equal(t, "MG", got[1].SKU)
	assert.Nil(t, got[1].VariantID)
}

func TestInventorySummary(t *testing.T) {
	f := newFixture()
	a := f.product(t, model.Product{Name: "A"})
	b := f.product(t, model.Product{Name: "B"})
	f.product(t, model.Product{Name: "C"})

	f.stock(t, a.ID, nil, 20, 5)
	f.stock(t, b.ID, nil, 0, 0)
	f.stock(t, "gone", nil, 50, 10)

	got, err := f.uc.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.InventorySummary{
		TotalProducts:       3,
		TotalInventoryItems: 2,
		LowStockItems:       1,
		OutOfStockItems:     1,
		TotalItemsInStock:   20,
		TotalReservedItems:  5,
		TotalAvailableItems: 15,
		OrphanedRecords:     1,
	}, *got)
}
