// internal/core/analytics/revenue.go
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// Contribution is one (key, amount) pair an order feeds into the
// revenue aggregation. Order-level dimensions yield a single
// contribution; the product dimension yields one per line.
type Contribution struct {
	Key    string
	Amount decimal.Decimal
}

// DimensionFunc extracts the contributions of one settled order.
// Returning an empty slice excludes the order from the grouping.
type DimensionFunc func(*domain.Order) []Contribution

// ByStaff groups order totals by the recording staff account.
func ByStaff(o *domain.Order) []Contribution {
	id := o.StaffID()
	if id == "" {
		return nil
	}
	return []Contribution{{Key: id, Amount: o.TotalAmount.Decimal}}
}

// ByPaymentMethod groups order totals by payment-method token.
func ByPaymentMethod(o *domain.Order) []Contribution {
	if o.PaymentMethod == "" {
		return nil
	}
	return []Contribution{{Key: o.PaymentMethod, Amount: o.TotalAmount.Decimal}}
}

// ByDay groups order totals by calendar day. Orders without a
// parseable date are excluded.
func ByDay(o *domain.Order) []Contribution {
	if o.OrderDate.IsZero() {
		return nil
	}
	return []Contribution{{Key: o.OrderDate.Format(dayKey), Amount: o.TotalAmount.Decimal}}
}

// ByProduct groups per-line totals by product id, one contribution per
// order line.
func ByProduct(o *domain.Order) []Contribution {
	if len(o.Items) == 0 {
		return nil
	}
	out := make([]Contribution, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		if item.ProductID == "" {
			continue
		}
		out = append(out, Contribution{Key: item.ProductID, Amount: item.TotalPrice.Decimal})
	}
	return out
}

// GroupOrders aggregates settled orders along one dimension. The
// settled predicate is applied once, before any grouping, so unsettled
// orders are invisible to every figure this function produces. Each
// group accumulates a count of contributions and the sum of their
// amounts.
//
// The result is ordered by descending total with first-seen tie-break.
func GroupOrders(orders []domain.Order, dim DimensionFunc, cfg Config) []domain.RevenueGroup {
	totals := make(map[string]*domain.RevenueGroup)
	var order []string

	for i := range orders {
		o := &orders[i]
		if !IsSettled(o.PaymentStatus, cfg) {
			continue
		}

		for _, c := range dim(o) {
			g, ok := totals[c.Key]
			if !ok {
				g = &domain.RevenueGroup{Key: c.Key, Total: decimal.Zero}
				totals[c.Key] = g
				order = append(order, c.Key)
			}
			g.Count++
			g.Total = g.Total.Add(c.Amount)
		}
	}

	groups := make([]domain.RevenueGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *totals[key])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	return groups
}

// TopGroups truncates a sorted revenue aggregation to its n largest
// groups.
func TopGroups(groups []domain.RevenueGroup, n int) []domain.RevenueGroup {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}
