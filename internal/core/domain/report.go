// internal/core/domain/report.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus is the stock-health classification of a single inventory
// record. Exactly one status applies to any record.
type StockStatus string

const (
	StatusOutOfStock    StockStatus = "out_of_stock"
	StatusCritical      StockStatus = "critical"
	StatusReorderNeeded StockStatus = "reorder_needed"
	StatusOverstock     StockStatus = "overstock"
	StatusNormal        StockStatus = "normal"
)

// Priority ranks statuses by severity for alert ordering; lower is more
// urgent. Normal records never produce alerts.
func (s StockStatus) Priority() int {
	switch s {
	case StatusOutOfStock:
		return 1
	case StatusCritical:
		return 2
	case StatusReorderNeeded:
		return 3
	case StatusOverstock:
		return 4
	default:
		return 5
	}
}

// StockAlert is one actionable entry in the prioritized alert list.
// Threshold carries the specific limit the record violated.
type StockAlert struct {
	InventoryID string      `json:"inventory_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Threshold   int         `json:"threshold"`
	Status      StockStatus `json:"status"`
	Priority    int         `json:"priority"`
	Message     string      `json:"message"`
}

// CategorySummary aggregates stocked quantity for one category.
// ProductCount is the number of distinct products, not inventory rows.
type CategorySummary struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Percentage   float64 `json:"percentage"`
	ProductCount int     `json:"product_count"`
}

// ClassifiedRecord pairs an inventory record with its computed status
// for the classified list view.
type ClassifiedRecord struct {
	InventoryRecord
	Status StockStatus `json:"status"`
}

// TrendBucket is one day of warehouse movement. Buckets exist for every
// day of the window even when nothing moved, so the series binds
// directly to a chart axis.
type TrendBucket struct {
	Date          string `json:"date"`
	InboundTotal  int    `json:"inbound_total"`
	OutboundTotal int    `json:"outbound_total"`
}

// RevenueGroup is one bucket of the revenue aggregation: all settled
// orders sharing a dimension key.
type RevenueGroup struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DashboardSummary holds the headline figures of the dashboard.
type DashboardSummary struct {
	TotalRecords   int                 `json:"total_records"`
	TotalQuantity  int                 `json:"total_quantity"`
	TotalValue     decimal.Decimal     `json:"total_value"`
	StatusCounts   map[StockStatus]int `json:"status_counts"`
	AlertCount     int                 `json:"alert_count"`
	SettledOrders  int                 `json:"settled_orders"`
	SettledRevenue decimal.Decimal     `json:"settled_revenue"`
}

// DashboardSnapshot is the full computed dashboard: everything the
// console needs in one payload, freshly derived from one fetch cycle.
type DashboardSnapshot struct {
	Summary        DashboardSummary  `json:"summary"`
	Alerts         []StockAlert      `json:"alerts"`
	TopCategories  []CategorySummary `json:"top_categories"`
	Trend          []TrendBucket     `json:"trend"`
	RevenueByStaff []RevenueGroup    `json:"revenue_by_staff"`
	GeneratedAt    time.Time         `json:"generated_at"`
}
