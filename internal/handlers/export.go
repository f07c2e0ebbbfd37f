// internal/handlers/export.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/ports"
	"github.com/storelens/storelens-be/internal/core/services"
	"github.com/storelens/storelens-be/internal/workers"
)

// TaskEnqueuer is the slice of asynq.Client the export handler uses.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExportHandler serves report downloads: a synchronous xlsx stream and
// an asynchronous S3-backed export with job tracking.
type ExportHandler struct {
	reports ports.ReportService
	cache   ports.CacheRepository
	tasks   TaskEnqueuer
	ttl     time.Duration
	jobTTL  time.Duration
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(
	reports ports.ReportService,
	cache ports.CacheRepository,
	tasks TaskEnqueuer,
	snapshotTTL time.Duration,
	jobStatusTTL time.Duration,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		reports: reports,
		cache:   cache,
		tasks:   tasks,
		ttl:     snapshotTTL,
		jobTTL:  jobStatusTTL,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.logger.InfoContext(ctx, "starting Excel export")

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var snapshot domain.DashboardSnapshot

	err := h.cache.GetOrSet(ctx, cacheKey, &snapshot, func() (interface{}, error) {
		return h.reports.Snapshot(ctx)
	}, h.ttl)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load snapshot for export", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	data, err := services.BuildWorkbook(&snapshot)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("storelens_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", services.WorkbookContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.Any("error", err))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.String("filename", filename),
		slog.Int("size_bytes", len(data)))
}

// ExportAsync handles POST /api/v1/export/async
func (h *ExportHandler) ExportAsync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID := uuid.New().String()
	now := time.Now()

	payload := workers.ExportJobPayload{
		JobID:       jobID,
		RequestedAt: now,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal export payload", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	// The job record exists before the task so a fast status poll
	// never sees a missing job.
	status := workers.ExportJobStatus{
		JobID:      jobID,
		Status:     workers.JobStatusQueued,
		EnqueuedAt: now,
	}
	if err := h.cache.SetWithTTL(ctx, workers.ExportStatusKey(jobID), status, h.jobTTL); err != nil {
		h.logger.ErrorContext(ctx, "failed to create job record", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	task := asynq.NewTask(workers.TypeReportExport, b)
	info, err := h.tasks.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue export task", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	h.logger.InfoContext(ctx, "export queued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID))

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  workers.JobStatusQueued,
		"message": "Report export has been queued for processing",
	})
}

// ExportStatus handles GET /api/v1/export/status/{jobId}
func (h *ExportHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("jobId")

	var status workers.ExportJobStatus
	err := h.cache.Get(ctx, workers.ExportStatusKey(jobID), &status)
	if err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get job status",
			slog.String("job_id", jobID),
			slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to get job status")
		return
	}

	respondJSON(w, http.StatusOK, status)
}
