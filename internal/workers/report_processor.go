// internal/workers/report_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/core/ports"
	"github.com/storelens/storelens-be/internal/core/services"
	"github.com/storelens/storelens-be/internal/pkg/config"
)

const (
	TypeReportRefresh    = "report:refresh"
	TypeReportExport     = "report:export"
	TypeCleanupExports   = "cleanup:exports"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// Export job lifecycle states, stored in Redis per job.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// ExportJobPayload is the payload of a report:export task.
type ExportJobPayload struct {
	JobID       string    `json:"job_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// ExportJobStatus is the job record the status endpoint serves. It
// lives in Redis under export:{jobId}:status and survives report cache
// invalidation.
type ExportJobStatus struct {
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	ObjectKey   string     `json:"object_key,omitempty"`
	DownloadURL string     `json:"download_url,omitempty"`
	Error       string     `json:"error,omitempty"`
	EnqueuedAt  time.Time  `json:"enqueued_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ExportStatusKey builds the Redis key of one export job record.
func ExportStatusKey(jobID string) string {
	return redis_a.BuildKey(redis_a.PrefixExport, jobID, "status")
}

// ReportProcessor handles snapshot refresh and export tasks.
type ReportProcessor struct {
	reports ports.ReportService
	cache   *redis_a.Cache
	storage ports.ObjectStorage
	config  *config.Config
	logger  *slog.Logger
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(
	reports ports.ReportService,
	cache *redis_a.Cache,
	storage ports.ObjectStorage,
	cfg *config.Config,
	logger *slog.Logger,
) *ReportProcessor {
	return &ReportProcessor{
		reports: reports,
		cache:   cache,
		storage: storage,
		config:  cfg,
		logger:  logger.With(slog.String("processor", "report")),
	}
}

// RefreshSnapshot recomputes the dashboard and writes it through to
// the cache, so the console stays warm between requests. Stale derived
// entries are dropped first; they were computed from the previous
// fetch cycle.
func (p *ReportProcessor) RefreshSnapshot(ctx context.Context, t *asynq.Task) error {
	start := time.Now()
	p.logger.InfoContext(ctx, "refreshing dashboard snapshot")

	snapshot, err := p.reports.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute snapshot: %w", err)
	}

	if err := p.cache.InvalidateReports(ctx); err != nil {
		p.logger.WarnContext(ctx, "failed to invalidate report cache", slog.Any("error", err))
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	if err := p.cache.SetWithTTL(ctx, cacheKey, snapshot, p.config.Analytics.SnapshotTTL); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}

	p.logger.InfoContext(ctx, "dashboard snapshot refreshed",
		slog.Int("records", snapshot.Summary.TotalRecords),
		slog.Int("alerts", snapshot.Summary.AlertCount),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// ExportReport builds the xlsx report, uploads it to object storage
// and records the job outcome with a presigned download link.
func (p *ReportProcessor) ExportReport(ctx context.Context, t *asynq.Task) error {
	var payload ExportJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "exporting report",
		slog.String("job_id", payload.JobID))

	p.writeStatus(ctx, ExportJobStatus{
		JobID:      payload.JobID,
		Status:     JobStatusProcessing,
		EnqueuedAt: payload.RequestedAt,
	})

	snapshot, err := p.reports.Snapshot(ctx)
	if err != nil {
		p.failJob(ctx, &payload, fmt.Errorf("failed to compute snapshot: %w", err))
		return fmt.Errorf("failed to compute snapshot: %w", err)
	}

	data, err := services.BuildWorkbook(snapshot)
	if err != nil {
		p.failJob(ctx, &payload, fmt.Errorf("failed to build workbook: %w", err))
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	key := fmt.Sprintf("reports/%s/storelens_%s.xlsx",
		time.Now().Format("2006/01/02"), payload.JobID)

	if err := p.storage.Upload(ctx, key, data, services.WorkbookContentType); err != nil {
		p.failJob(ctx, &payload, fmt.Errorf("failed to upload report: %w", err))
		return fmt.Errorf("failed to upload report: %w", err)
	}

	url, err := p.storage.PresignedURL(ctx, key, p.config.Export.PresignTTL)
	if err != nil {
		p.failJob(ctx, &payload, fmt.Errorf("failed to presign report: %w", err))
		return fmt.Errorf("failed to presign report: %w", err)
	}

	now := time.Now()
	p.writeStatus(ctx, ExportJobStatus{
		JobID:       payload.JobID,
		Status:      JobStatusDone,
		ObjectKey:   key,
		DownloadURL: url,
		EnqueuedAt:  payload.RequestedAt,
		CompletedAt: &now,
	})

	p.logger.InfoContext(ctx, "report exported",
		slog.String("job_id", payload.JobID),
		slog.String("key", key),
		slog.Int("size_bytes", len(data)))

	return nil
}

func (p *ReportProcessor) failJob(ctx context.Context, payload *ExportJobPayload, err error) {
	now := time.Now()
	p.writeStatus(ctx, ExportJobStatus{
		JobID:       payload.JobID,
		Status:      JobStatusFailed,
		Error:       err.Error(),
		EnqueuedAt:  payload.RequestedAt,
		CompletedAt: &now,
	})
}

func (p *ReportProcessor) writeStatus(ctx context.Context, status ExportJobStatus) {
	key := ExportStatusKey(status.JobID)
	if err := p.cache.SetWithTTL(ctx, key, status, p.config.Export.JobStatusTTL); err != nil {
		p.logger.WarnContext(ctx, "failed to write job status",
			slog.String("job_id", status.JobID),
			slog.Any("error", err))
	}
}
