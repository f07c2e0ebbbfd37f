// internal/core/services/report.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/ports"
)

// ErrUnknownDimension is returned when a revenue request names a
// grouping dimension the service does not know.
var ErrUnknownDimension = errors.New("unknown revenue dimension")

// ErrUpstreamUnavailable is returned when not a single collection
// could be fetched, meaning there is nothing to compute from.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ReportService derives dashboard reports from the upstream
// collections. One fetch cycle feeds every figure in a snapshot, so
// the numbers are mutually consistent even when the upstream keeps
// changing underneath.
type ReportService struct {
	source ports.DataSource
	cfg    analytics.Config
	logger *slog.Logger
	now    func() time.Time
}

// Statically assert that *ReportService implements the ReportService port.
var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service
func NewReportService(source ports.DataSource, cfg analytics.Config, logger *slog.Logger) *ReportService {
	return &ReportService{
		source: source,
		cfg:    cfg,
		logger: logger.With(slog.String("service", "report")),
		now:    time.Now,
	}
}

// collections is the result of one upstream fetch cycle. A collection
// whose fetch failed is present but empty.
type collections struct {
	inventories  []domain.InventoryRecord
	products     []domain.Product
	orders       []domain.Order
	transactions []domain.Transaction
}

// fetchAll pulls every collection concurrently. A single failed fetch
// degrades its slice to empty and the dashboard renders without that
// section; only a total failure aborts the cycle.
func (s *ReportService) fetchAll(ctx context.Context) (*collections, error) {
	var (
		wg   sync.WaitGroup
		cols collections
		mu   sync.Mutex
		errs []error
	)

	fail := func(name string, err error) {
		mu.Lock()
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
		mu.Unlock()
		s.logger.WarnContext(ctx, "collection fetch failed",
			slog.String("collection", name),
			slog.Any("error", err))
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		items, err := s.source.Inventories(ctx)
		if err != nil {
			fail("inventories", err)
			return
		}
		cols.inventories = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.source.Products(ctx)
		if err != nil {
			fail("products", err)
			return
		}
		cols.products = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.source.Orders(ctx)
		if err != nil {
			fail("orders", err)
			return
		}
		cols.orders = items
	}()
	go func() {
		defer wg.Done()
		items, err := s.source.Transactions(ctx)
		if err != nil {
			fail("transactions", err)
			return
		}
		cols.transactions = items
	}()
	wg.Wait()

	if len(errs) == 4 {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, errors.Join(errs...))
	}

	return &cols, nil
}

// Snapshot computes the full dashboard from one fetch cycle.
func (s *ReportService) Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	start := s.now()

	cols, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := analytics.NewProductIndex(cols.products)
	classified := analytics.ClassifyAll(cols.inventories, s.cfg)

	statusCounts := make(map[domain.StockStatus]int, 5)
	totalQuantity := 0
	for i := range classified {
		statusCounts[classified[i].Status]++
		totalQuantity += classified[i].QuantityInStock.Int()
	}

	alerts := analytics.BuildAlerts(cols.inventories, idx, s.cfg)
	categories := analytics.AggregateByCategory(cols.inventories, idx, s.cfg)
	trend := analytics.BuildTrend(cols.transactions, s.cfg.TrendWindowDays, s.now(), s.cfg)
	revenue := analytics.GroupOrders(cols.orders, analytics.ByStaff, s.cfg)

	settledOrders := 0
	settledRevenue := decimal.Zero
	for i := range cols.orders {
		if analytics.IsSettled(cols.orders[i].PaymentStatus, s.cfg) {
			settledOrders++
			settledRevenue = settledRevenue.Add(cols.orders[i].TotalAmount.Decimal)
		}
	}

	snapshot := &domain.DashboardSnapshot{
		Summary: domain.DashboardSummary{
			TotalRecords:   len(cols.inventories),
			TotalQuantity:  totalQuantity,
			TotalValue:     analytics.TotalValue(cols.inventories, idx),
			StatusCounts:   statusCounts,
			AlertCount:     len(alerts),
			SettledOrders:  settledOrders,
			SettledRevenue: settledRevenue,
		},
		Alerts:         alerts,
		TopCategories:  analytics.TopCategories(categories, s.cfg.CategoryTopN),
		Trend:          trend.Buckets,
		RevenueByStaff: analytics.TopGroups(revenue, s.cfg.RevenueTopN),
		GeneratedAt:    s.now(),
	}

	if trend.Unclassified > 0 || trend.Undated > 0 {
		s.logger.InfoContext(ctx, "trend data quality",
			slog.Int("unclassified", trend.Unclassified),
			slog.Int("undated", trend.Undated))
	}

	s.logger.InfoContext(ctx, "snapshot computed",
		slog.Int("records", len(cols.inventories)),
		slog.Int("alerts", len(alerts)),
		slog.Duration("duration", s.now().Sub(start)))

	return snapshot, nil
}

// Alerts computes the prioritized alert list.
func (s *ReportService) Alerts(ctx context.Context) ([]domain.StockAlert, error) {
	inventories, products, err := s.fetchInventoryAndCatalog(ctx)
	if err != nil {
		return nil, err
	}

	idx := analytics.NewProductIndex(products)
	return analytics.BuildAlerts(inventories, idx, s.cfg), nil
}

// StockStatus classifies every inventory record.
func (s *ReportService) StockStatus(ctx context.Context) ([]domain.ClassifiedRecord, error) {
	inventories, err := s.source.Inventories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch inventories: %w", err)
	}
	return analytics.ClassifyAll(inventories, s.cfg), nil
}

// Trend buckets warehouse movement over a trailing window of days.
func (s *ReportService) Trend(ctx context.Context, windowDays int) ([]domain.TrendBucket, error) {
	transactions, err := s.source.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	result := analytics.BuildTrend(transactions, windowDays, s.now(), s.cfg)
	if result.Unclassified > 0 || result.Undated > 0 {
		s.logger.InfoContext(ctx, "trend data quality",
			slog.Int("unclassified", result.Unclassified),
			slog.Int("undated", result.Undated))
	}

	return result.Buckets, nil
}

// Revenue groups settled orders along the named dimension.
func (s *ReportService) Revenue(ctx context.Context, dimension string) ([]domain.RevenueGroup, error) {
	dim, err := dimensionFunc(dimension)
	if err != nil {
		return nil, err
	}

	orders, err := s.source.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	return analytics.GroupOrders(orders, dim, s.cfg), nil
}

// fetchInventoryAndCatalog pulls the two collections the alert list
// needs. The catalog fetch is best effort; alerts degrade to
// denormalized names when it fails.
func (s *ReportService) fetchInventoryAndCatalog(ctx context.Context) ([]domain.InventoryRecord, []domain.Product, error) {
	var (
		wg          sync.WaitGroup
		inventories []domain.InventoryRecord
		products    []domain.Product
		invErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		inventories, invErr = s.source.Inventories(ctx)
	}()
	go func() {
		defer wg.Done()
		var err error
		products, err = s.source.Products(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "collection fetch failed",
				slog.String("collection", "products"),
				slog.Any("error", err))
			products = nil
		}
	}()
	wg.Wait()

	if invErr != nil {
		return nil, nil, fmt.Errorf("fetch inventories: %w", invErr)
	}

	return inventories, products, nil
}

// dimensionFunc maps a request-level dimension name onto the grouping
// function that implements it.
func dimensionFunc(dimension string) (analytics.DimensionFunc, error) {
	switch strings.ToLower(strings.TrimSpace(dimension)) {
	case "", "staff":
		return analytics.ByStaff, nil
	case "payment", "payment_method":
		return analytics.ByPaymentMethod, nil
	case "day":
		return analytics.ByDay, nil
	case "product":
		return analytics.ByProduct, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
}
