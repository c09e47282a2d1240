package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/search"
	"github.com/fekuna/omnipos-catalog-service/internal/search/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func newSearch(products ...model.Product) (search.UseCase, *memdb.DB) {
	db := memdb.New()
	for _, p := range products {
		if _, err := db.Products.Insert(p); err != nil {
			panic(err)
		}
	}
	return NewSearchUseCase(prodRepoPkg.NewMemoryRepository(db), logger.NewNop()), db
}

func mkProduct(id, name string, price, discount float64) model.Product {
	return model.Product{
		BaseModel:          model.BaseModel{ID: id},
		Name:               name,
		SKU:                "SKU-" + id,
		Price:              price,
		DiscountPercentage: discount,
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	p1 := mkProduct("p1", "Wireless Mouse", 20, 0)
	p2 := mkProduct("p2", "Keyboard", 40, 0)
	p2.Description = "mechanical, pairs with any MOUSE pad"
	p3 := mkProduct("p3", "Monitor", 200, 0)
	p3.SKU = "mouse-free"
	uc, _ := newSearch(p1, p2, p3)
	ctx := context.Background()

	got, err := uc.Search(ctx, "mOuSe")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(got))

	got, err = uc.Search(ctx, "keyb")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids(got))

	got, err = uc.Search(ctx, "nothing-like-this")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = uc.Search(ctx, "   ")
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestFilter_PriceRangeAndDiscountKeepsOrder(t *testing.T) {
	uc, _ := newSearch(
		mkProduct("a", "cheap", 20, 10),
		mkProduct("b", "mid discounted", 120, 5),
		mkProduct("c", "mid full price", 100, 0),
		mkProduct("d", "pricey", 300, 20),
		mkProduct("e", "low edge", 50, 15),
		mkProduct("f", "high edge", 150, 1),
	)

	got, err := uc.Filter(context.Background(), &dto.FilterCriteria{
		MinPrice: floatPtr(50),
		MaxPrice: floatPtr(150),
		Discount: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "f"}, ids(got))
}

func TestFilter_CategoryAndAttributes(t *testing.T) {
	shirt := mkProduct("shirt", "Shirt", 30, 0)
	shirt.CategoryID = strPtr("clothes")
	shirt.Variants = []model.ProductVariant{
		{ID: "s-red-m", Attributes: map[string]string{"color": "red", "size": "M"}},
		{ID: "s-blue-l", Attributes: map[string]string{"color": "blue", "size": "L"}},
	}
	hat := mkProduct("hat", "Hat", 15, 0)
	hat.CategoryID = strPtr("clothes")
	hat.Variants = []model.ProductVariant{{ID: "h-red", Attributes: map[string]string{"color": "red"}}}
	bare := mkProduct("bare", "Plain", 10, 0)
	bare.CategoryID = strPtr("clothes")
	other := mkProduct("other", "Mug", 5, 0)
	other.CategoryID = strPtr("kitchen")

	uc, _ := newSearch(shirt, hat, bare, other)
	ctx := context.Background()

	got, err := uc.Filter(ctx, &dto.FilterCriteria{Category: "clothes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shirt", "hat", "bare"}, ids(got))

	got, err = uc.Filter(ctx, &dto.FilterCriteria{Attributes: map[string]string{"color": "red"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"shirt", "hat"}, ids(got))

	// all pairs must match on the same variant
	got, err = uc.Filter(ctx, &dto.FilterCriteria{Attributes: map[string]string{"color": "red", "size": "L"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseAttributes(t *testing.T) {
	attrs, err := ParseAttributes(`{"color":"red","size":"M"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"color": "red", "size": "M"}, attrs)

	attrs, err = ParseAttributes("")
	require.NoError(t, err)
	assert.Nil(t, attrs)

	for _, raw := range []string{`{color:red}`, `["red"]`, `{"size":42}`} {
		_, err := ParseAttributes(raw)
		assert.True(t, apperror.Is(err, apperror.KindBadRequest), raw)
	}
}

func TestSort(t *testing.T) {
	items := []model.Product{
		mkProduct("1", "banana", 20, 0),
		mkProduct("2", "apple", 10, 50),
		mkProduct("3", "cherry", 20, 0),
	}

	require.NoError(t, Sort(items, "price"))
	assert.Equal(t, []string{"2", "1", "3"}, ids(items))

	require.NoError(t, Sort(items, "-price"))
	assert.Equal(t, []string{"1", "3", "2"}, ids(items), "ties keep prior order")

	require.NoError(t, Sort(items, "name"))
	assert.Equal(t, []string{"2", "1", "3"}, ids(items))

	require.NoError(t, Sort(items, "-finalPrice"))
	assert.Equal(t, []string{"1", "3", "2"}, ids(items))

	err := Sort(items, "weight")
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, p := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 3, p.Pages)
	require.NotNil(t, p.NextPage)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 3, *p.NextPage)
	assert.Equal(t, 1, *p.PrevPage)

	page, p = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, page)
	assert.Nil(t, p.NextPage)

	page, p = Paginate(items, 9, 3)
	assert.Empty(t, page)
	assert.Equal(t, 9, p.Page)

	page, p = Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.Pages)
	assert.Nil(t, p.NextPage)
	assert.Nil(t, p.PrevPage)

	page, p = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 0, p.Pages)
}

func TestQuery_FilterSortPaginate(t *testing.T) {
	uc, _ := newSearch(
		mkProduct("a", "a", 40, 10),
		mkProduct("b", "b", 10, 10),
		mkProduct("c", "c", 30, 0),
		mkProduct("d", "d", 20, 10),
	)

	res, err := uc.Query(context.Background(), &dto.Query{
		Criteria: dto.FilterCriteria{Discount: true},
		Sort:     "price",
		Page:     1,
		Limit:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, ids(res.Items))
	assert.Equal(t, 3, res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.Pages)

	_, err = uc.Query(context.Background(), &dto.Query{Sort: "-colour"})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}
