// internal/core/analytics/alerts.go
package analytics

import (
	"fmt"
	"sort"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// alertMessages are the human-readable templates keyed by status; the
// single argument is the product display name.
var alertMessages = map[domain.StockStatus]string{
	domain.StatusOutOfStock:    "%s is out of stock",
	domain.StatusCritical:      "%s is below its minimum stock level",
	domain.StatusReorderNeeded: "%s has reached its reorder point",
	domain.StatusOverstock:     "%s exceeds its maximum stock level",
}

// BuildAlerts produces the prioritized alert list for a set of
// inventory records. Every non-Normal record yields one alert carrying
// the threshold it violated. Ordering is a stable two-key sort: status
// severity first, then ascending quantity so the emptiest shelves
// surface first within a tier; ties beyond that preserve input order.
// The cap is applied only after sorting, so truncation can never drop a
// more severe alert in favor of a less severe one.
func BuildAlerts(records []domain.InventoryRecord, idx *ProductIndex, cfg Config) []domain.StockAlert {
	alerts := make([]domain.StockAlert, 0, len(records))

	for i := range records {
		rec := &records[i]
		status := Classify(rec, cfg)
		if status == domain.StatusNormal {
			continue
		}

		name := idx.DisplayName(rec, cfg)
		alerts = append(alerts, domain.StockAlert{
			InventoryID: rec.InventoryID,
			ProductName: name,
			Quantity:    rec.QuantityInStock.Int(),
			Threshold:   alertThreshold(rec, status, cfg),
			Status:      status,
			Priority:    status.Priority(),
			Message:     fmt.Sprintf(alertMessages[status], name),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority != alerts[j].Priority {
			return alerts[i].Priority < alerts[j].Priority
		}
		return alerts[i].Quantity < alerts[j].Quantity
	})

	if cap := cfg.maxAlerts(); len(alerts) > cap {
		alerts = alerts[:cap]
	}
	return alerts
}

// alertThreshold picks the limit the record violated: minimum stock for
// critical (and for out-of-stock, as context), the reorder point for
// reorder alerts, and the maximum for overstock.
func alertThreshold(rec *domain.InventoryRecord, status domain.StockStatus, cfg Config) int {
	switch status {
	case domain.StatusCritical, domain.StatusOutOfStock:
		return rec.MinimumStock.Int()
	case domain.StatusReorderNeeded:
		return EffectiveReorderPoint(rec, cfg)
	case domain.StatusOverstock:
		max, _ := rec.MaxStock()
		return max
	default:
		return 0
	}
}
