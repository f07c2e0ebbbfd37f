// internal/core/analytics/category_test.go
package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
)

func catalogIndex() *analytics.ProductIndex {
	return analytics.NewProductIndex([]domain.Product{
		{ProductID: "p-1", ProductName: "Cà phê sữa", CategoryName: "Đồ uống"},
		{ProductID: "p-2", ProductName: "Trà đào", CategoryName: "Đồ uống"},
		{ProductID: "p-3", ProductName: "Bánh mì", Category: &domain.Category{ID: "c-2", Name: "Đồ ăn"}},
	})
}

func stocked(id, productID string, qty int) domain.InventoryRecord {
	return domain.InventoryRecord{
		InventoryID:     id,
		ProductID:       productID,
		QuantityInStock: domain.FlexInt(qty),
	}
}

func TestAggregateByCategory(t *testing.T) {
	cfg := analytics.DefaultConfig()

	records := []domain.InventoryRecord{
		stocked("i-1", "p-1", 30),
		stocked("i-2", "p-2", 20),
		stocked("i-3", "p-3", 50),
	}

	summaries := analytics.AggregateByCategory(records, catalogIndex(), cfg)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Đồ uống", summaries[0].Name)
	assert.Equal(t, 50, summaries[0].Quantity)
	assert.Equal(t, 2, summaries[0].ProductCount)
	assert.InDelta(t, 50.0, summaries[0].Percentage, 1e-9)

	assert.Equal(t, "Đồ ăn", summaries[1].Name)
	assert.Equal(t, 50, summaries[1].Quantity)
	assert.Equal(t, 1, summaries[1].ProductCount)
	assert.InDelta(t, 50.0, summaries[1].Percentage, 1e-9)
}

func TestAggregateByCategory_PercentagesSumToHundred(t *testing.T) {
	cfg := analytics.DefaultConfig()

	records := []domain.InventoryRecord{
		stocked("i-1", "p-1", 7),
		stocked("i-2", "p-2", 13),
		stocked("i-3", "p-3", 29),
		stocked("i-4", "", 11), // unresolvable -> unknown category
	}

	summaries := analytics.AggregateByCategory(records, catalogIndex(), cfg)
	require.NotEmpty(t, summaries)

	sum := 0.0
	for _, s := range summaries {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAggregateByCategory_ZeroStockRecordsAreSkipped(t *testing.T) {
	cfg := analytics.DefaultConfig()

	records := []domain.InventoryRecord{
		stocked("i-1", "p-1", 0),
		stocked("i-2", "p-3", 10),
	}

	summaries := analytics.AggregateByCategory(records, catalogIndex(), cfg)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Đồ ăn", summaries[0].Name)
}

func TestAggregateByCategory_EmptyInput(t *testing.T) {
	cfg := analytics.DefaultConfig()
	assert.Empty(t, analytics.AggregateByCategory(nil, catalogIndex(), cfg))
}

func TestAggregateByCategory_DuplicateProductRowsCountOnce(t *testing.T) {
	cfg := analytics.DefaultConfig()

	// Two inventory rows for the same product: quantity accumulates
	// but the product counts once.
	records := []domain.InventoryRecord{
		stocked("i-1", "p-1", 10),
		stocked("i-2", "p-1", 15),
	}

	summaries := analytics.AggregateByCategory(records, catalogIndex(), cfg)
	require.Len(t, summaries, 1)
	assert.Equal(t, 25, summaries[0].Quantity)
	assert.Equal(t, 1, summaries[0].ProductCount)
}

func TestAggregateByCategory_UnresolvableFallsBackToUnknownLabel(t *testing.T) {
	cfg := analytics.DefaultConfig()

	records := []domain.InventoryRecord{
		stocked("i-1", "missing-product", 5),
		stocked("i-2", "", 5),
	}

	summaries := analytics.AggregateByCategory(records, catalogIndex(), cfg)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Khác", summaries[0].Name)
	assert.Equal(t, 10, summaries[0].Quantity)
	// Only the row with a product id contributes to the distinct set.
	assert.Equal(t, 1, summaries[0].ProductCount)
}

func TestTopCategories(t *testing.T) {
	summaries := []domain.CategorySummary{
		{Name: "a", Quantity: 30},
		{Name: "b", Quantity: 20},
		{Name: "c", Quantity: 10},
	}

	top := analytics.TopCategories(summaries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Name)
	assert.Equal(t, "b", top[1].Name)

	assert.Len(t, analytics.TopCategories(summaries, 10), 3)
	assert.Len(t, analytics.TopCategories(summaries, 0), 3)
}
