// internal/core/analytics/classifier.go
package analytics

import (
	"github.com/storelens/storelens-be/internal/core/domain"
)

// Classify returns the stock-health status of a single inventory
// record. Rules are evaluated in a fixed precedence order and the first
// match wins:
//
//  1. zero quantity            -> out of stock
//  2. below minimum stock      -> critical
//  3. at or below reorder point -> reorder needed
//  4. above maximum stock      -> overstock
//  5. otherwise                -> normal
//
// The ordering is a deliberate business rule: a record violating
// several thresholds at once (e.g. maximum below minimum) still gets
// exactly one status, the most urgent. Malformed numeric input has
// already been coerced to zero at the decode boundary; an absent
// maximum means unbounded.
func Classify(rec *domain.InventoryRecord, cfg Config) domain.StockStatus {
	qty := rec.QuantityInStock.Int()
	min := rec.MinimumStock.Int()
	reorder := EffectiveReorderPoint(rec, cfg)

	if qty == 0 {
		return domain.StatusOutOfStock
	}
	if min > 0 && qty < min {
		return domain.StatusCritical
	}
	if reorder > 0 && qty <= reorder {
		return domain.StatusReorderNeeded
	}
	if max, ok := rec.MaxStock(); ok && qty > max {
		return domain.StatusOverstock
	}
	return domain.StatusNormal
}

// EffectiveReorderPoint resolves the reorder threshold for a record:
// the configured reorder point, else the minimum stock, else the
// engine's fallback default.
func EffectiveReorderPoint(rec *domain.InventoryRecord, cfg Config) int {
	if rp := rec.ReorderPoint.Int(); rp > 0 {
		return rp
	}
	if min := rec.MinimumStock.Int(); min > 0 {
		return min
	}
	return cfg.fallbackReorderPoint()
}

// ClassifyAll classifies every record, preserving input order.
func ClassifyAll(records []domain.InventoryRecord, cfg Config) []domain.ClassifiedRecord {
	out := make([]domain.ClassifiedRecord, 0, len(records))
	for i := range records {
		out = append(out, domain.ClassifiedRecord{
			InventoryRecord: records[i],
			Status:          Classify(&records[i], cfg),
		})
	}
	return out
}
