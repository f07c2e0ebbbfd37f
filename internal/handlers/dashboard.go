// internal/handlers/dashboard.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/ports"
	"github.com/storelens/storelens-be/internal/core/services"
)

const (
	defaultTrendDays = 30
	maxTrendDays     = 365
)

// DashboardHandler serves the computed dashboard reports. Every
// endpoint reads through the cache so repeated console refreshes do
// not hammer the upstream API.
type DashboardHandler struct {
	reports ports.ReportService
	cache   ports.CacheRepository
	ttl     time.Duration
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reports ports.ReportService, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		reports: reports,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var snapshot domain.DashboardSnapshot

	err := h.cache.GetOrSet(ctx, cacheKey, &snapshot, func() (interface{}, error) {
		return h.reports.Snapshot(ctx)
	}, h.ttl)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// GetTrend handles GET /api/v1/dashboard/trend?days=30
func (h *DashboardHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := defaultTrendDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTrendDays {
			respondError(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = parsed
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixTrend, strconv.Itoa(days))
	var buckets []domain.TrendBucket

	err := h.cache.GetOrSet(ctx, cacheKey, &buckets, func() (interface{}, error) {
		return h.reports.Trend(ctx, days)
	}, h.ttl)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load trend",
			slog.Int("days", days),
			slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to load trend")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"days":  days,
		"trend": buckets,
	})
}

// GetRevenue handles GET /api/v1/dashboard/revenue?dimension=staff
func (h *DashboardHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dimension := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("dimension")))
	if dimension == "" {
		dimension = "staff"
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixRevenue, dimension)
	var groups []domain.RevenueGroup

	err := h.cache.GetOrSet(ctx, cacheKey, &groups, func() (interface{}, error) {
		return h.reports.Revenue(ctx, dimension)
	}, h.ttl)

	if err != nil {
		if errors.Is(err, services.ErrUnknownDimension) {
			respondError(w, http.StatusBadRequest, "dimension must be one of: staff, payment, day, product")
			return
		}
		h.logger.ErrorContext(ctx, "failed to load revenue",
			slog.String("dimension", dimension),
			slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to load revenue")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dimension": dimension,
		"groups":    groups,
	})
}
