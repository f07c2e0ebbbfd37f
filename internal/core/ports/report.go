// internal/core/ports/report.go
package ports

import (
	"context"
	"time"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// ReportService is the application port the HTTP handlers and workers
// build dashboards from. Implementations fan out to the DataSource and
// run the analytics pipeline over whatever subset of the collections
// could be fetched.
type ReportService interface {
	Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error)
	Alerts(ctx context.Context) ([]domain.StockAlert, error)
	StockStatus(ctx context.Context) ([]domain.ClassifiedRecord, error)
	Trend(ctx context.Context, windowDays int) ([]domain.TrendBucket, error)
	Revenue(ctx context.Context, dimension string) ([]domain.RevenueGroup, error)
}

// ObjectStorage abstracts the blob store that finished report exports
// land in.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
