// internal/core/analytics/valuation.go
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// TotalValue computes the monetary value of the stocked inventory:
// resolved unit price times quantity, summed over all records. Each
// term is sanitized before accumulation (unresolvable prices are zero
// and quantities are clamped non-negative at decode time) so a
// malformed record contributes nothing rather than corrupting the sum.
func TotalValue(records []domain.InventoryRecord, idx *ProductIndex) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		rec := &records[i]
		qty := rec.QuantityInStock.Int()
		if qty <= 0 {
			continue
		}

		price := idx.UnitPrice(rec)
		if !price.IsPositive() {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
