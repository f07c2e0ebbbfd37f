// internal/core/analytics/revenue_test.go
package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
)

func paidOrder(id, staff, method, amount string) domain.Order {
	return domain.Order{
		OrderID:       id,
		AccountID:     staff,
		PaymentMethod: method,
		PaymentStatus: "PAID",
		TotalAmount:   price(amount),
	}
}

func TestGroupOrders_SettledPredicateExcludesUnpaid(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		paidOrder("o-1", "staff-1", "cash", "100"),
		{OrderID: "o-2", AccountID: "staff-1", PaymentStatus: "PENDING", TotalAmount: price("9999")},
		{OrderID: "o-3", AccountID: "staff-2", PaymentStatus: "cancelled", TotalAmount: price("50")},
	}

	groups := analytics.GroupOrders(orders, analytics.ByStaff, cfg)
	require.Len(t, groups, 1)
	assert.Equal(t, "staff-1", groups[0].Key)
	assert.Equal(t, 1, groups[0].Count)
	assert.True(t, groups[0].Total.Equal(decimal.RequireFromString("100")))
}

func TestGroupOrders_SettledMatchIsCaseInsensitive(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		{OrderID: "o-1", AccountID: "s", PaymentStatus: "paid", TotalAmount: price("10")},
		{OrderID: "o-2", AccountID: "s", PaymentStatus: "Đã thanh toán", TotalAmount: price("20")},
	}

	groups := analytics.GroupOrders(orders, analytics.ByStaff, cfg)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, groups[0].Total.Equal(decimal.RequireFromString("30")))
}

func TestGroupOrders_ByStaffPrefersNestedAccount(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		{
			OrderID:       "o-1",
			AccountID:     "legacy-id",
			Account:       &domain.Account{AccountID: "acct-9", Roles: []string{"STAFF"}},
			PaymentStatus: "PAID",
			TotalAmount:   price("75"),
		},
	}

	groups := analytics.GroupOrders(orders, analytics.ByStaff, cfg)
	require.Len(t, groups, 1)
	assert.Equal(t, "acct-9", groups[0].Key)
}

func TestGroupOrders_ByProductUsesLineTotals(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		{
			OrderID:       "o-1",
			PaymentStatus: "PAID",
			TotalAmount:   price("500"),
			Items: []domain.OrderItem{
				{ProductID: "p-1", Quantity: 2, TotalPrice: price("300")},
				{ProductID: "p-2", Quantity: 1, TotalPrice: price("200")},
			},
		},
		{
			OrderID:       "o-2",
			PaymentStatus: "PAID",
			TotalAmount:   price("150"),
			Items: []domain.OrderItem{
				{ProductID: "p-1", Quantity: 1, TotalPrice: price("150")},
			},
		},
	}

	groups := analytics.GroupOrders(orders, analytics.ByProduct, cfg)
	require.Len(t, groups, 2)

	assert.Equal(t, "p-1", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, groups[0].Total.Equal(decimal.RequireFromString("450")))

	assert.Equal(t, "p-2", groups[1].Key)
	assert.True(t, groups[1].Total.Equal(decimal.RequireFromString("200")))
}

func TestGroupOrders_ByDay(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		{OrderID: "o-1", PaymentStatus: "PAID", TotalAmount: price("10"), OrderDate: apiTime(t, "2025-02-01")},
		{OrderID: "o-2", PaymentStatus: "PAID", TotalAmount: price("20"), OrderDate: apiTime(t, "2025-02-01")},
		{OrderID: "o-3", PaymentStatus: "PAID", TotalAmount: price("5"), OrderDate: apiTime(t, "2025-02-02")},
		{OrderID: "o-4", PaymentStatus: "PAID", TotalAmount: price("40")}, // undated: excluded
	}

	groups := analytics.GroupOrders(orders, analytics.ByDay, cfg)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-02-01", groups[0].Key)
	assert.True(t, groups[0].Total.Equal(decimal.RequireFromString("30")))
	assert.Equal(t, "2025-02-02", groups[1].Key)
}

func TestGroupOrders_OrderedByDescendingTotalFirstSeenTieBreak(t *testing.T) {
	cfg := analytics.DefaultConfig()

	orders := []domain.Order{
		paidOrder("o-1", "low", "cash", "10"),
		paidOrder("o-2", "tie-a", "cash", "50"),
		paidOrder("o-3", "tie-b", "cash", "50"),
		paidOrder("o-4", "high", "cash", "100"),
	}

	groups := analytics.GroupOrders(orders, analytics.ByStaff, cfg)
	require.Len(t, groups, 4)
	assert.Equal(t, "high", groups[0].Key)
	assert.Equal(t, "tie-a", groups[1].Key)
	assert.Equal(t, "tie-b", groups[2].Key)
	assert.Equal(t, "low", groups[3].Key)
}

func TestGroupOrders_EmptyInput(t *testing.T) {
	cfg := analytics.DefaultConfig()
	assert.Empty(t, analytics.GroupOrders(nil, analytics.ByStaff, cfg))
}

func TestTopGroups(t *testing.T) {
	groups := []domain.RevenueGroup{
		{Key: "a", Total: decimal.NewFromInt(30)},
		{Key: "b", Total: decimal.NewFromInt(20)},
		{Key: "c", Total: decimal.NewFromInt(10)},
	}

	top := analytics.TopGroups(groups, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Key)

	assert.Len(t, analytics.TopGroups(groups, 0), 3)
	assert.Len(t, analytics.TopGroups(groups, 5), 3)
}
