// internal/handlers/inventory.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/ports"
)

// InventoryHandler serves the stock views of the console: the
// prioritized alert list and the full per-record classification.
type InventoryHandler struct {
	reports ports.ReportService
	cache   ports.CacheRepository
	ttl     time.Duration
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(reports ports.ReportService, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		reports: reports,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// GetAlerts handles GET /api/v1/inventory/alerts
func (h *InventoryHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixAlerts, "all")
	var alerts []domain.StockAlert

	err := h.cache.GetOrSet(ctx, cacheKey, &alerts, func() (interface{}, error) {
		return h.reports.Alerts(ctx)
	}, h.ttl)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load alerts", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to load alerts")
		return
	}

	// An empty list is a healthy warehouse, not an error.
	if alerts == nil {
		alerts = []domain.StockAlert{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetStatus handles GET /api/v1/inventory/status
func (h *InventoryHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixStatus, "all")
	var records []domain.ClassifiedRecord

	err := h.cache.GetOrSet(ctx, cacheKey, &records, func() (interface{}, error) {
		return h.reports.StockStatus(ctx)
	}, h.ttl)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load stock status", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to load stock status")
		return
	}

	if records == nil {
		records = []domain.ClassifiedRecord{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
