// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/storelens/storelens-be/internal/pkg/config"
)

// ExportPruner deletes stored export objects older than a cutoff.
type ExportPruner interface {
	DeleteOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}

// ExportPrefix is the object-key prefix of all generated reports.
const ExportPrefix = "reports/"

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	storage ExportPruner
	config  *config.Config
	logger  *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(storage ExportPruner, cfg *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage: storage,
		config:  cfg,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupExports removes export objects older than the retention
// window. Job status records expire on their own Redis TTL.
func (p *CleanupProcessor) CleanupExports(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up old exports")

	cutoff := time.Now().Add(-p.config.Export.Retention)

	deleted, err := p.storage.DeleteOlderThan(ctx, ExportPrefix, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup exports: %w", err)
	}

	p.logger.InfoContext(ctx, "old exports cleaned up",
		slog.Int("objects_deleted", deleted),
		slog.Time("cutoff", cutoff))

	return nil
}

// CleanupTempFiles removes old temporary files
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up temp files")

	tempDir := p.config.Export.TempDir
	maxAge := p.config.Export.Retention

	var deletedCount int
	err := filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				p.logger.WarnContext(ctx, "failed to delete temp file",
					slog.String("file", path),
					slog.Any("error", err))
			} else {
				deletedCount++
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to walk temp directory: %w", err)
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.Int("files_deleted", deletedCount))

	return nil
}
