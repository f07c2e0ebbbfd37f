// internal/core/analytics/trend_test.go
package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
)

func apiTime(t *testing.T, value string) domain.APITime {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return domain.APITime{Time: parsed}
}

func TestBuildTrend_BucketCompleteness(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	result := analytics.BuildTrend(nil, 30, ref, cfg)
	require.Len(t, result.Buckets, 30)

	// Contiguous calendar days ending at the reference date.
	assert.Equal(t, "2024-12-12", result.Buckets[0].Date)
	assert.Equal(t, "2025-01-10", result.Buckets[29].Date)
	for i := 1; i < len(result.Buckets); i++ {
		prev, _ := time.Parse("2006-01-02", result.Buckets[i-1].Date)
		cur, _ := time.Parse("2006-01-02", result.Buckets[i].Date)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev))
	}

	for _, b := range result.Buckets {
		assert.Zero(t, b.InboundTotal)
		assert.Zero(t, b.OutboundTotal)
	}
}

// TestBuildTrend_LocalizedTypes is the canonical localized-log fixture:
// a restock and a sale on the same day, labels in Vietnamese.
func TestBuildTrend_LocalizedTypes(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{TransactionID: "t-1", Quantity: 10, TransactionType: "Nhập kho", TransactionDate: apiTime(t, "2025-01-05")},
		{TransactionID: "t-2", Quantity: 4, TransactionType: "Bán ra", TransactionDate: apiTime(t, "2025-01-05")},
	}

	result := analytics.BuildTrend(transactions, 30, ref, cfg)
	require.Len(t, result.Buckets, 30)
	assert.Zero(t, result.Unclassified)

	for _, b := range result.Buckets {
		if b.Date == "2025-01-05" {
			assert.Equal(t, 10, b.InboundTotal)
			assert.Equal(t, 4, b.OutboundTotal)
		} else {
			assert.Zero(t, b.InboundTotal)
			assert.Zero(t, b.OutboundTotal)
		}
	}
}

func TestBuildTrend_RawTokens(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{Quantity: 5, TransactionType: "IN", TransactionDate: apiTime(t, "2025-03-14")},
		{Quantity: 7, TransactionType: "OUT", TransactionDate: apiTime(t, "2025-03-14")},
		{Quantity: 2, TransactionType: "sold", TransactionDate: apiTime(t, "2025-03-15")},
	}

	result := analytics.BuildTrend(transactions, 7, ref, cfg)

	byDate := map[string]domain.TrendBucket{}
	for _, b := range result.Buckets {
		byDate[b.Date] = b
	}
	assert.Equal(t, 5, byDate["2025-03-14"].InboundTotal)
	assert.Equal(t, 7, byDate["2025-03-14"].OutboundTotal)
	assert.Equal(t, 2, byDate["2025-03-15"].OutboundTotal)
}

func TestBuildTrend_UnrecognizedTypesAreCountedNotAggregated(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{Quantity: 10, TransactionType: "kiểm kê", TransactionDate: apiTime(t, "2025-01-09")},
		{Quantity: 3, TransactionType: "", TransactionDate: apiTime(t, "2025-01-09")},
	}

	result := analytics.BuildTrend(transactions, 30, ref, cfg)
	assert.Equal(t, 2, result.Unclassified)
	for _, b := range result.Buckets {
		assert.Zero(t, b.InboundTotal)
		assert.Zero(t, b.OutboundTotal)
	}
}

func TestBuildTrend_OutOfWindowAndUndatedAreIgnored(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{Quantity: 10, TransactionType: "IN", TransactionDate: apiTime(t, "2024-11-01")}, // before window
		{Quantity: 10, TransactionType: "IN", TransactionDate: apiTime(t, "2025-01-11")}, // after reference
		{Quantity: 10, TransactionType: "IN"},                                            // no date at all
	}

	result := analytics.BuildTrend(transactions, 30, ref, cfg)
	assert.Equal(t, 1, result.Undated)
	for _, b := range result.Buckets {
		assert.Zero(t, b.InboundTotal)
	}
}

func TestBuildTrend_TimeOfDayIsDiscarded(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	late := domain.APITime{Time: time.Date(2025, 1, 8, 23, 59, 59, 0, time.UTC)}
	early := domain.APITime{Time: time.Date(2025, 1, 8, 0, 0, 1, 0, time.UTC)}

	result := analytics.BuildTrend([]domain.Transaction{
		{Quantity: 1, TransactionType: "IN", TransactionDate: late},
		{Quantity: 2, TransactionType: "IN", TransactionDate: early},
	}, 7, ref, cfg)

	for _, b := range result.Buckets {
		if b.Date == "2025-01-08" {
			assert.Equal(t, 3, b.InboundTotal)
		}
	}
}

func TestBuildTrend_NonPositiveWindowFallsBackToDefault(t *testing.T) {
	cfg := analytics.DefaultConfig()
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	result := analytics.BuildTrend(nil, 0, ref, cfg)
	assert.Len(t, result.Buckets, 30)
}
