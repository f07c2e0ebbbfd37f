// internal/core/analytics/resolver_test.go
package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
)

func TestProductIndex_Resolve(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", ProductName: "Cà phê"},
		{ProductID: "p-2", ProductName: "Trà"},
	})

	rec := domain.InventoryRecord{ProductID: "p-1"}
	p := idx.Resolve(&rec)
	require.NotNil(t, p)
	assert.Equal(t, "Cà phê", p.ProductName)

	assert.Nil(t, idx.Resolve(&domain.InventoryRecord{ProductID: "missing"}))
	assert.Nil(t, idx.Resolve(&domain.InventoryRecord{}))
}

func TestProductIndex_DuplicateIDsKeepFirst(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", ProductName: "first"},
		{ProductID: "p-1", ProductName: "second"},
	})

	p := idx.Resolve(&domain.InventoryRecord{ProductID: "p-1"})
	require.NotNil(t, p)
	assert.Equal(t, "first", p.ProductName)
}

func TestProductIndex_DisplayNamePrecedence(t *testing.T) {
	cfg := analytics.DefaultConfig()
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", ProductName: "Catalog Name"},
		{ProductID: "p-2"}, // resolvable, but empty name
	})

	tests := []struct {
		name     string
		rec      domain.InventoryRecord
		expected string
	}{
		{
			name:     "catalog_name_wins",
			rec:      domain.InventoryRecord{ProductID: "p-1", ProductName: "Stale Copy"},
			expected: "Catalog Name",
		},
		{
			name:     "denormalized_copy_when_catalog_name_empty",
			rec:      domain.InventoryRecord{ProductID: "p-2", ProductName: "Stale Copy"},
			expected: "Stale Copy",
		},
		{
			name:     "denormalized_copy_when_unresolvable",
			rec:      domain.InventoryRecord{ProductID: "gone", ProductName: "Stale Copy"},
			expected: "Stale Copy",
		},
		{
			name:     "placeholder_when_nothing_available",
			rec:      domain.InventoryRecord{},
			expected: "Khác",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, idx.DisplayName(&tt.rec, cfg))
		})
	}
}

func TestProductIndex_CategoryName(t *testing.T) {
	cfg := analytics.DefaultConfig()
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", CategoryName: "Đồ uống"},
		{ProductID: "p-2", Category: &domain.Category{ID: "c-1", Name: "Đồ ăn"}},
		{ProductID: "p-3"},
	})

	assert.Equal(t, "Đồ uống", idx.CategoryName(&domain.InventoryRecord{ProductID: "p-1"}, cfg))
	assert.Equal(t, "Đồ ăn", idx.CategoryName(&domain.InventoryRecord{ProductID: "p-2"}, cfg))
	assert.Equal(t, "Khác", idx.CategoryName(&domain.InventoryRecord{ProductID: "p-3"}, cfg))
	assert.Equal(t, "Khác", idx.CategoryName(&domain.InventoryRecord{}, cfg))
}

func TestProductIndex_UnitPricePrecedence(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", UnitPrice: price("100"), CostPrice: price("80")},
		{ProductID: "p-2", CostPrice: price("80")},
		{ProductID: "p-3"},
	})

	tests := []struct {
		name     string
		rec      domain.InventoryRecord
		expected string
	}{
		{"unit_price_wins", domain.InventoryRecord{ProductID: "p-1", UnitPrice: price("1")}, "100"},
		{"cost_price_second", domain.InventoryRecord{ProductID: "p-2", UnitPrice: price("1")}, "80"},
		{"inventory_price_third", domain.InventoryRecord{ProductID: "p-3", UnitPrice: price("7")}, "7"},
		{"unresolvable_uses_inventory_price", domain.InventoryRecord{ProductID: "gone", UnitPrice: price("7")}, "7"},
		{"zero_when_nothing_set", domain.InventoryRecord{ProductID: "p-3"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, idx.UnitPrice(&tt.rec).Equal(expected))
		})
	}
}

func TestProductIndex_CustomUnknownLabel(t *testing.T) {
	cfg := analytics.Config{UnknownCategoryLabel: "Unknown"}
	idx := analytics.NewProductIndex(nil)

	assert.Equal(t, "Unknown", idx.CategoryName(&domain.InventoryRecord{}, cfg))
	assert.Equal(t, "Unknown", idx.DisplayName(&domain.InventoryRecord{}, cfg))
}
