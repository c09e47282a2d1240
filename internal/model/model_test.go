package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_FinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"ten percent off", 100, 10, 90.00},
		{"no discount", 19.99, 0, 19.99},
		{"full discount", 50, 100, 0},
		{"rounds to cents", 9.99, 15, 8.49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPercentage: tt.discount}
			assert.Equal(t, tt.want, p.FinalPrice())
		})
	}
}

func TestInventory_Derived(t *testing.T) {
	inv := Inventory{Quantity: 10, ReservedQuantity: 7, LowStockThreshold: 5}

	assert.Equal(t, 3, inv.AvailableQuantity())
	assert.True(t, inv.InStock())
	assert.True(t, inv.IsLowStock())

	inv.ReservedQuantity = 10
	assert.False(t, inv.InStock())

	inv.ReservedQuantity = 0
	assert.False(t, inv.IsLowStock())
}

func TestProduct_CloneIsDeep(t *testing.T) {
	price := 12.5
	cat := "c1"
	p := Product{
		CategoryID: &cat,
		Images:     []string{"a.png"},
		Variants: []ProductVariant{
			{ID: "v1", Attributes: map[string]string{"color": "red"}, Price: &price},
		},
	}

	c := p.Clone()
	c.Images[0] = "b.png"
	c.Variants[0].Attributes["color"] = "blue"
	*c.Variants[0].Price = 1
	*c.CategoryID = "c2"

	assert.Equal(t, "a.png", p.Images[0])
	assert.Equal(t, "red", p.Variants[0].Attributes["color"])
	assert.Equal(t, 12.5, *p.Variants[0].Price)
	assert.Equal(t, "c1", *p.CategoryID)
}

func TestProductVariant_MatchesAttributes(t *testing.T) {
	v := ProductVariant{Attributes: map[string]string{"color": "red", "size": "M"}}

	assert.True(t, v.MatchesAttributes(map[string]string{"color": "red"}))
	assert.True(t, v.MatchesAttributes(map[string]string{"color": "red", "size": "M"}))
	assert.False(t, v.MatchesAttributes(map[string]string{"color": "red", "size": "L"}))
	assert.False(t, ProductVariant{}.MatchesAttributes(map[string]string{"color": "red"}))
}

func TestStockKey(t *testing.T) {
	v := "v1"
	assert.Equal(t, StockKey{ProductID: "p1", VariantID: "v1"}, NewStockKey("p1", &v))
	assert.Nil(t, NewStockKey("p1", nil).VariantPtr())
	assert.Equal(t, "v1", *NewStockKey("p1", &v).VariantPtr())
}

func TestOptionalString_UnmarshalJSON(t *testing.T) {
	type body struct {
		ParentID OptionalString `json:"parentId"`
	}

	var absent, null, empty, set body
	assert.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.NoError(t, json.Unmarshal([]byte(`{"parentId":null}`), &null))
	assert.NoError(t, json.Unmarshal([]byte(`{"parentId":""}`), &empty))
	assert.NoError(t, json.Unmarshal([]byte(`{"parentId":"c1"}`), &set))

	assert.False(t, absent.ParentID.Set)
	assert.True(t, null.ParentID.Set)
	assert.Nil(t, null.ParentID.Value)
	assert.True(t, empty.ParentID.Set)
	assert.Nil(t, empty.ParentID.Normalized())
	assert.Equal(t, "c1", *set.ParentID.Normalized())

	var bad body
	assert.Error(t, json.Unmarshal([]byte(`{"parentId":42}`), &bad))
}
