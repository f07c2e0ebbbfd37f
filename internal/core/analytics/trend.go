// internal/core/analytics/trend.go
package analytics

import (
	"time"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// dayKey is the calendar-day granularity used for trend buckets;
// time-of-day is discarded before bucket lookup.
const dayKey = "2006-01-02"

// TrendResult is the movement trend over a trailing window plus the
// data-quality counters the aggregate itself cannot carry.
type TrendResult struct {
	Buckets []domain.TrendBucket

	// Unclassified counts in-window transactions whose free-text type
	// matched neither direction vocabulary. They are excluded from the
	// totals; a rising count means the upstream vocabulary drifted.
	Unclassified int

	// Undated counts transactions dropped because their date could not
	// be parsed.
	Undated int
}

// BuildTrend buckets a transaction log into a trailing window of
// calendar days ending at ref. The result always contains exactly
// windowDays buckets with contiguous dates, each starting at zero, even
// when the log is empty. The series binds directly to a chart axis
// without gap-filling on the consumer side.
//
// Transactions outside the window are ignored; so are transactions
// without a parseable date. Direction comes from the shared free-text
// normalizer. Neither case ever aborts the aggregation.
func BuildTrend(transactions []domain.Transaction, windowDays int, ref time.Time, cfg Config) TrendResult {
	if windowDays <= 0 {
		windowDays = defaultTrendWindowDays
	}

	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start := refDay.AddDate(0, 0, -(windowDays - 1))

	buckets := make([]domain.TrendBucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		key := start.AddDate(0, 0, i).Format(dayKey)
		buckets[i] = domain.TrendBucket{Date: key}
		index[key] = i
	}

	result := TrendResult{Buckets: buckets}

	for i := range transactions {
		tx := &transactions[i]
		if tx.TransactionDate.IsZero() {
			result.Undated++
			continue
		}

		pos, ok := index[tx.TransactionDate.Format(dayKey)]
		if !ok {
			// Outside the window.
			continue
		}

		qty := tx.Quantity.Int()
		switch Direction(tx.TransactionType, cfg) {
		case DirectionIn:
			result.Buckets[pos].InboundTotal += qty
		case DirectionOut:
			result.Buckets[pos].OutboundTotal += qty
		default:
			result.Unclassified++
		}
	}

	return result
}
