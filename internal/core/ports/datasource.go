// internal/core/ports/datasource.go
package ports

import (
	"context"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// DataSource is the read port onto the upstream store backend. The
// analytics layer never talks HTTP directly; it consumes these
// collections and joins them in memory.
type DataSource interface {
	Inventories(ctx context.Context) ([]domain.InventoryRecord, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	// Transactions walks the upstream's paginated endpoint and returns
	// every page flattened into one slice.
	Transactions(ctx context.Context) ([]domain.Transaction, error)
	// Ping verifies the upstream is reachable and the token is valid.
	Ping(ctx context.Context) error
}
