// internal/core/analytics/config.go

// Package analytics is the inventory analytics engine: pure,
// side-effect-free computations that turn the upstream collections
// (inventories, products, transactions, orders) into classifications,
// prioritized alerts, and chart-ready aggregates. Nothing in this
// package performs I/O or mutates its inputs; every call returns
// freshly allocated output.
package analytics

// Config carries the business tunables of the engine. The zero value
// is usable: every accessor falls back to the documented default.
type Config struct {
	// FallbackReorderPoint is used when a record has neither a reorder
	// point nor a minimum stock configured. The historical default is
	// 10 units; it is a business default, not a universal constant.
	FallbackReorderPoint int

	// MaxAlerts caps the prioritized alert list.
	MaxAlerts int

	// CategoryTopN bounds the top-categories view of the category
	// aggregation.
	CategoryTopN int

	// RevenueTopN bounds the top groups of the revenue aggregation.
	RevenueTopN int

	// TrendWindowDays is the default trailing window of the movement
	// trend.
	TrendWindowDays int

	// UnknownCategoryLabel is the placeholder category for records
	// whose product cannot be resolved.
	UnknownCategoryLabel string

	// InboundMarkers and OutboundMarkers are the token vocabularies
	// used to classify free-text transaction types. Matching is
	// uppercase containment; the upstream vocabulary mixes localized
	// labels with raw IN/OUT tokens.
	InboundMarkers  []string
	OutboundMarkers []string

	// PaidStatuses are the payment-status sentinels that mark an order
	// as settled. Matching is case-insensitive equality.
	PaidStatuses []string
}

// Defaults observed in the production console.
const (
	defaultFallbackReorderPoint = 10
	defaultMaxAlerts            = 15
	defaultCategoryTopN         = 10
	defaultRevenueTopN          = 5
	defaultTrendWindowDays      = 30
	defaultUnknownCategory      = "Khác"
)

var (
	defaultInboundMarkers  = []string{"IN", "NHẬP"}
	defaultOutboundMarkers = []string{"OUT", "XUẤT", "BÁN", "SOLD"}
	defaultPaidStatuses    = []string{"PAID", "ĐÃ THANH TOÁN", "COMPLETED"}
)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		FallbackReorderPoint: defaultFallbackReorderPoint,
		MaxAlerts:            defaultMaxAlerts,
		CategoryTopN:         defaultCategoryTopN,
		RevenueTopN:          defaultRevenueTopN,
		TrendWindowDays:      defaultTrendWindowDays,
		UnknownCategoryLabel: defaultUnknownCategory,
		InboundMarkers:       defaultInboundMarkers,
		OutboundMarkers:      defaultOutboundMarkers,
		PaidStatuses:         defaultPaidStatuses,
	}
}

func (c Config) fallbackReorderPoint() int {
	if c.FallbackReorderPoint > 0 {
		return c.FallbackReorderPoint
	}
	return defaultFallbackReorderPoint
}

func (c Config) maxAlerts() int {
	if c.MaxAlerts > 0 {
		return c.MaxAlerts
	}
	return defaultMaxAlerts
}

func (c Config) categoryTopN() int {
	if c.CategoryTopN > 0 {
		return c.CategoryTopN
	}
	return defaultCategoryTopN
}

func (c Config) revenueTopN() int {
	if c.RevenueTopN > 0 {
		return c.RevenueTopN
	}
	return defaultRevenueTopN
}

func (c Config) unknownCategoryLabel() string {
	if c.UnknownCategoryLabel != "" {
		return c.UnknownCategoryLabel
	}
	return defaultUnknownCategory
}

func (c Config) inboundMarkers() []string {
	if len(c.InboundMarkers) > 0 {
		return c.InboundMarkers
	}
	return defaultInboundMarkers
}

func (c Config) outboundMarkers() []string {
	if len(c.OutboundMarkers) > 0 {
		return c.OutboundMarkers
	}
	return defaultOutboundMarkers
}

func (c Config) paidStatuses() []string {
	if len(c.PaidStatuses) > 0 {
		return c.PaidStatuses
	}
	return defaultPaidStatuses
}
