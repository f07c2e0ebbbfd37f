// internal/core/services/report_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/services"
	"github.com/storelens/storelens-be/test/helpers"
	"github.com/storelens/storelens-be/test/mocks"
)

func testAnalyticsConfig() analytics.Config {
	cfg := helpers.LoadTestConfig().Analytics
	return analytics.Config{
		FallbackReorderPoint: cfg.FallbackReorderPoint,
		MaxAlerts:            cfg.MaxAlerts,
		CategoryTopN:         cfg.CategoryTopN,
		RevenueTopN:          cfg.RevenueTopN,
		TrendWindowDays:      cfg.TrendWindowDays,
		UnknownCategoryLabel: cfg.UnknownCategoryLabel,
		InboundMarkers:       cfg.InboundMarkers,
		OutboundMarkers:      cfg.OutboundMarkers,
		PaidStatuses:         cfg.PaidStatuses,
	}
}

func newReportService(t *testing.T) (*services.ReportService, *mocks.MockDataSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockDataSource(ctrl)
	svc := services.NewReportService(source, testAnalyticsConfig(), helpers.TestLogger())
	return svc, source
}

func TestReportService_Snapshot(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	inventories := []domain.InventoryRecord{
		*helpers.CreateTestInventoryRecord(),
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.InventoryID = "inv-002"
			rec.ProductID = "p-002"
			rec.ProductName = "Trà đào"
			rec.QuantityInStock = 0
		}),
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.InventoryID = "inv-003"
			rec.ProductID = "p-003"
			rec.ProductName = "Bánh mì"
			rec.QuantityInStock = 150
		}),
	}
	products := []domain.Product{*helpers.CreateTestProduct()}
	orders := []domain.Order{
		*helpers.CreateTestOrder(),
		*helpers.CreateTestOrder(func(o *domain.Order) {
			o.OrderID = "o-002"
			o.PaymentStatus = "PENDING"
			o.TotalAmount = domain.NewFlexDecimal(decimal.NewFromInt(30000))
		}),
	}
	transactions := []domain.Transaction{*helpers.CreateTestTransaction()}

	source.EXPECT().Inventories(gomock.Any()).Return(inventories, nil)
	source.EXPECT().Products(gomock.Any()).Return(products, nil)
	source.EXPECT().Orders(gomock.Any()).Return(orders, nil)
	source.EXPECT().Transactions(gomock.Any()).Return(transactions, nil)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 3, snapshot.Summary.TotalRecords)
	assert.Equal(t, 190, snapshot.Summary.TotalQuantity)
	assert.Equal(t, 1, snapshot.Summary.StatusCounts[domain.StatusOutOfStock])
	assert.Equal(t, 1, snapshot.Summary.StatusCounts[domain.StatusOverstock])
	assert.Equal(t, 1, snapshot.Summary.StatusCounts[domain.StatusNormal])

	require.Len(t, snapshot.Alerts, 2)
	assert.Equal(t, "inv-002", snapshot.Alerts[0].InventoryID)
	assert.Equal(t, domain.StatusOutOfStock, snapshot.Alerts[0].Status)
	assert.Equal(t, 2, snapshot.Summary.AlertCount)

	assert.Equal(t, 1, snapshot.Summary.SettledOrders)
	assert.True(t, snapshot.Summary.SettledRevenue.Equal(decimal.NewFromInt(75000)),
		"settled revenue %s", snapshot.Summary.SettledRevenue)

	require.Len(t, snapshot.RevenueByStaff, 1)
	assert.Equal(t, "staff-1", snapshot.RevenueByStaff[0].Key)
	assert.Equal(t, 1, snapshot.RevenueByStaff[0].Count)

	assert.Len(t, snapshot.Trend, 30)
	todayInbound := 0
	for _, bucket := range snapshot.Trend {
		todayInbound += bucket.InboundTotal
	}
	assert.Equal(t, 10, todayInbound)

	assert.False(t, snapshot.GeneratedAt.IsZero())
}

func TestReportService_Snapshot_PartialFetchFailure(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	inventories := helpers.CreateTestInventoryRecords(2)

	source.EXPECT().Inventories(gomock.Any()).Return(inventories, nil)
	source.EXPECT().Products(gomock.Any()).Return(nil, errors.New("timeout"))
	source.EXPECT().Orders(gomock.Any()).Return(nil, errors.New("timeout"))
	source.EXPECT().Transactions(gomock.Any()).Return(nil, errors.New("timeout"))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err, "one surviving collection is enough to render")

	assert.Equal(t, 2, snapshot.Summary.TotalRecords)
	assert.Equal(t, 0, snapshot.Summary.SettledOrders)
	assert.Empty(t, snapshot.RevenueByStaff)
	assert.Len(t, snapshot.Trend, 30)
}

func TestReportService_Snapshot_AllFetchesFail(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	upstreamErr := errors.New("connection refused")
	source.EXPECT().Inventories(gomock.Any()).Return(nil, upstreamErr)
	source.EXPECT().Products(gomock.Any()).Return(nil, upstreamErr)
	source.EXPECT().Orders(gomock.Any()).Return(nil, upstreamErr)
	source.EXPECT().Transactions(gomock.Any()).Return(nil, upstreamErr)

	snapshot, err := svc.Snapshot(ctx)
	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, services.ErrUpstreamUnavailable)
}

func TestReportService_Alerts(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	inventories := []domain.InventoryRecord{
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.QuantityInStock = 0
		}),
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.InventoryID = "inv-002"
			rec.ProductID = "p-002"
			rec.QuantityInStock = 3
		}),
	}
	products := []domain.Product{*helpers.CreateTestProduct()}

	source.EXPECT().Inventories(gomock.Any()).Return(inventories, nil)
	source.EXPECT().Products(gomock.Any()).Return(products, nil)

	alerts, err := svc.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, "inv-001", alerts[0].InventoryID)
	assert.Equal(t, domain.StatusOutOfStock, alerts[0].Status)
	assert.Equal(t, domain.StatusCritical, alerts[1].Status)
}

func TestReportService_Alerts_CatalogFetchIsBestEffort(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	inventories := []domain.InventoryRecord{
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.QuantityInStock = 0
		}),
	}

	source.EXPECT().Inventories(gomock.Any()).Return(inventories, nil)
	source.EXPECT().Products(gomock.Any()).Return(nil, errors.New("timeout"))

	alerts, err := svc.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Cà phê sữa đá", alerts[0].ProductName,
		"denormalized name survives a catalog outage")
}

func TestReportService_Alerts_InventoryFetchIsFatal(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	source.EXPECT().Inventories(gomock.Any()).Return(nil, errors.New("connection refused"))
	source.EXPECT().Products(gomock.Any()).Return([]domain.Product{}, nil)

	alerts, err := svc.Alerts(ctx)
	require.Error(t, err)
	assert.Nil(t, alerts)
	assert.Contains(t, err.Error(), "fetch inventories")
}

func TestReportService_StockStatus(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	inventories := []domain.InventoryRecord{
		*helpers.CreateTestInventoryRecord(),
		*helpers.CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.InventoryID = "inv-002"
			rec.QuantityInStock = 0
		}),
	}

	source.EXPECT().Inventories(gomock.Any()).Return(inventories, nil)

	classified, err := svc.StockStatus(ctx)
	require.NoError(t, err)
	require.Len(t, classified, 2)
	assert.Equal(t, domain.StatusNormal, classified[0].Status)
	assert.Equal(t, domain.StatusOutOfStock, classified[1].Status)
}

func TestReportService_StockStatus_FetchError(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	source.EXPECT().Inventories(gomock.Any()).Return(nil, errors.New("boom"))

	classified, err := svc.StockStatus(ctx)
	require.Error(t, err)
	assert.Nil(t, classified)
}

func TestReportService_Trend(t *testing.T) {
	svc, source := newReportService(t)
	ctx := context.Background()

	transactions := []domain.Transaction{
		*helpers.CreateTestTransaction(),
		*helpers.CreateTestTransaction(func(tx *domain.Transaction) {
			tx.TransactionID = "t-002"
			tx.TransactionType = "Xuất kho"
			tx.Quantity = 4
			tx.TransactionDate = domain.APITime{Time: time.Now().AddDate(0, 0, -1)}
		}),
	}

	source.EXPECT().Transactions(gomock.Any()).Return(transactions, nil)

	buckets, err := svc.Trend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	inbound, outbound := 0, 0
	for _, bucket := range buckets {
		inbound += bucket.InboundTotal
		outbound += bucket.OutboundTotal
	}
	assert.Equal(t, 10, inbound)
	assert.Equal(t, 4, outbound)
}

func TestReportService_Revenue(t *testing.T) {
	orders := []domain.Order{
		*helpers.CreateTestOrder(),
		*helpers.CreateTestOrder(func(o *domain.Order) {
			o.OrderID = "o-002"
			o.AccountID = "staff-2"
			o.PaymentMethod = "TRANSFER"
			o.TotalAmount = domain.NewFlexDecimal(decimal.NewFromInt(40000))
		}),
	}

	tests := []struct {
		name       string
		dimension  string
		wantGroups int
		wantKey    string
	}{
		{name: "default dimension is staff", dimension: "", wantGroups: 2, wantKey: "staff-1"},
		{name: "staff", dimension: "staff", wantGroups: 2, wantKey: "staff-1"},
		{name: "payment method", dimension: "payment", wantGroups: 2, wantKey: "CASH"},
		{name: "payment method long form", dimension: "payment_method", wantGroups: 2, wantKey: "CASH"},
		{name: "product", dimension: "product", wantGroups: 1, wantKey: "p-001"},
		{name: "case and whitespace tolerant", dimension: "  Staff ", wantGroups: 2, wantKey: "staff-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, source := newReportService(t)
			source.EXPECT().Orders(gomock.Any()).Return(orders, nil)

			groups, err := svc.Revenue(context.Background(), tt.dimension)
			require.NoError(t, err)
			require.Len(t, groups, tt.wantGroups)
			assert.Equal(t, tt.wantKey, groups[0].Key)
		})
	}
}

func TestReportService_Revenue_UnknownDimension(t *testing.T) {
	svc, _ := newReportService(t)

	groups, err := svc.Revenue(context.Background(), "moon_phase")
	require.Error(t, err)
	assert.Nil(t, groups)
	assert.ErrorIs(t, err, services.ErrUnknownDimension)
}

func TestReportService_Revenue_FetchError(t *testing.T) {
	svc, source := newReportService(t)

	source.EXPECT().Orders(gomock.Any()).Return(nil, errors.New("boom"))

	groups, err := svc.Revenue(context.Background(), "staff")
	require.Error(t, err)
	assert.Nil(t, groups)
}
