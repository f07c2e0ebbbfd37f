// internal/core/analytics/valuation_test.go
package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
)

func price(v string) domain.FlexDecimal {
	return domain.NewFlexDecimal(decimal.RequireFromString(v))
}

func TestTotalValue(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", UnitPrice: price("25000")},
		{ProductID: "p-2", CostPrice: price("12000")}, // no unit price
	})

	records := []domain.InventoryRecord{
		{InventoryID: "i-1", ProductID: "p-1", QuantityInStock: 4},
		{InventoryID: "i-2", ProductID: "p-2", QuantityInStock: 2},
		{InventoryID: "i-3", ProductID: "missing", QuantityInStock: 3, UnitPrice: price("1000")},
		{InventoryID: "i-4", ProductID: "missing", QuantityInStock: 10}, // no price anywhere
	}

	// 4*25000 + 2*12000 + 3*1000 = 127000
	total := analytics.TotalValue(records, idx)
	assert.True(t, total.Equal(decimal.RequireFromString("127000")),
		"expected 127000, got %s", total)
}

func TestTotalValue_EmptyInputs(t *testing.T) {
	idx := analytics.NewProductIndex(nil)
	assert.True(t, analytics.TotalValue(nil, idx).IsZero())
}

func TestTotalValue_ZeroQuantityContributesNothing(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", UnitPrice: price("99999")},
	})
	records := []domain.InventoryRecord{
		{InventoryID: "i-1", ProductID: "p-1", QuantityInStock: 0},
	}
	assert.True(t, analytics.TotalValue(records, idx).IsZero())
}

// TestTotalValue_Idempotent: same immutable inputs, same result: the
// calculator carries no hidden state.
func TestTotalValue_Idempotent(t *testing.T) {
	idx := analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", UnitPrice: price("123.45")},
	})
	records := []domain.InventoryRecord{
		{InventoryID: "i-1", ProductID: "p-1", QuantityInStock: 7},
	}

	first := analytics.TotalValue(records, idx)
	second := analytics.TotalValue(records, idx)
	assert.True(t, first.Equal(second))
}

func BenchmarkTotalValue(b *testing.B) {
	products := make([]domain.Product, 1000)
	records := make([]domain.InventoryRecord, 1000)
	for i := range products {
		id := string(rune('a'+i%26)) + string(rune('0'+i%10))
		products[i] = domain.Product{ProductID: id, UnitPrice: price("15000")}
		records[i] = domain.InventoryRecord{ProductID: id, QuantityInStock: domain.FlexInt(i % 100)}
	}
	idx := analytics.NewProductIndex(products)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analytics.TotalValue(records, idx)
	}
}
