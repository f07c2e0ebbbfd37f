// internal/core/analytics/category.go
package analytics

import (
	"sort"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// AggregateByCategory joins stocked inventory records against the
// product catalog and accumulates quantity per category name. Records
// with zero stock are skipped. ProductCount is the cardinality of the
// distinct product-id set per category, which keeps the count correct
// even if upstream ever ships duplicate inventory rows for one product.
//
// The result is ordered by descending quantity with first-seen
// tie-break, and percentages are computed over the full result set so
// they always sum to 100 (or are all zero when nothing is stocked).
func AggregateByCategory(records []domain.InventoryRecord, idx *ProductIndex, cfg Config) []domain.CategorySummary {
	type bucket struct {
		quantity int
		products map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	var order []string
	total := 0

	for i := range records {
		rec := &records[i]
		qty := rec.QuantityInStock.Int()
		if qty <= 0 {
			continue
		}

		name := idx.CategoryName(rec, cfg)
		b, ok := buckets[name]
		if !ok {
			b = &bucket{products: make(map[string]struct{})}
			buckets[name] = b
			order = append(order, name)
		}

		b.quantity += qty
		total += qty
		if rec.ProductID != "" {
			b.products[rec.ProductID] = struct{}{}
		}
	}

	summaries := make([]domain.CategorySummary, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		summary := domain.CategorySummary{
			Name:         name,
			Quantity:     b.quantity,
			ProductCount: len(b.products),
		}
		if total > 0 {
			summary.Percentage = float64(b.quantity) / float64(total) * 100
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Quantity > summaries[j].Quantity
	})

	return summaries
}

// TopCategories is a pure slice of the sorted aggregation; percentages
// were already computed over the full set and are unaffected by the
// truncation.
func TopCategories(summaries []domain.CategorySummary, n int) []domain.CategorySummary {
	if n <= 0 || n >= len(summaries) {
		return summaries
	}
	return summaries[:n]
}
