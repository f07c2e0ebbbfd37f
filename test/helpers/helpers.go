// test/helpers/helpers.go
package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/pkg/config"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Upstream: config.UpstreamConfig{
			BaseURL:   "http://localhost:8888/api/v1",
			TokenType: "Bearer",
			Token:     "test-token",
			Timeout:   5 * time.Second,
			PageSize:  50,
			MaxPages:  10,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Analytics: config.AnalyticsConfig{
			FallbackReorderPoint: 10,
			MaxAlerts:            15,
			CategoryTopN:         10,
			RevenueTopN:          5,
			TrendWindowDays:      30,
			UnknownCategoryLabel: "Khác",
			InboundMarkers:       []string{"IN", "NHẬP"},
			OutboundMarkers:      []string{"OUT", "XUẤT", "BÁN", "SOLD"},
			PaidStatuses:         []string{"PAID", "ĐÃ THANH TOÁN", "COMPLETED"},
			SnapshotTTL:          5 * time.Minute,
			RefreshInterval:      15 * time.Minute,
		},
		Export: config.ExportConfig{
			TempDir:      "/tmp",
			Retention:    24 * time.Hour,
			PresignTTL:   time.Hour,
			JobStatusTTL: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestInventoryRecord creates a test inventory record
func CreateTestInventoryRecord(overrides ...func(*domain.InventoryRecord)) *domain.InventoryRecord {
	max := domain.FlexInt(100)
	rec := &domain.InventoryRecord{
		InventoryID:     "inv-001",
		ProductID:       "p-001",
		ProductName:     "Cà phê sữa đá",
		QuantityInStock: 40,
		MinimumStock:    5,
		MaximumStock:    &max,
		ReorderPoint:    12,
		UnitPrice:       domain.NewFlexDecimal(decimal.NewFromInt(25000)),
		UpdatedAt:       domain.APITime{Time: time.Now()},
	}

	for _, override := range overrides {
		override(rec)
	}

	return rec
}

// CreateTestInventoryRecords creates multiple test inventory records
func CreateTestInventoryRecords(count int) []domain.InventoryRecord {
	records := make([]domain.InventoryRecord, count)
	for i := 0; i < count; i++ {
		records[i] = *CreateTestInventoryRecord(func(rec *domain.InventoryRecord) {
			rec.InventoryID = fmt.Sprintf("inv-%03d", i+1)
			rec.ProductID = fmt.Sprintf("p-%03d", i+1)
			rec.ProductName = fmt.Sprintf("Sản phẩm %d", i+1)
			rec.QuantityInStock = domain.FlexInt(20 + i*5)
		})
	}
	return records
}

// CreateTestProduct creates a test product
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		ProductID:    "p-001",
		ProductName:  "Cà phê sữa đá",
		UnitPrice:    domain.NewFlexDecimal(decimal.NewFromInt(25000)),
		CostPrice:    domain.NewFlexDecimal(decimal.NewFromInt(15000)),
		CategoryName: "Đồ uống",
	}

	for _, override := range overrides {
		override(p)
	}

	return p
}

// CreateTestOrder creates a settled test order
func CreateTestOrder(overrides ...func(*domain.Order)) *domain.Order {
	o := &domain.Order{
		OrderID:       "o-001",
		AccountID:     "staff-1",
		TotalAmount:   domain.NewFlexDecimal(decimal.NewFromInt(75000)),
		PaymentStatus: "PAID",
		PaymentMethod: "CASH",
		OrderDate:     domain.APITime{Time: time.Now()},
		Items: []domain.OrderItem{
			{
				ProductID:   "p-001",
				ProductName: "Cà phê sữa đá",
				Quantity:    3,
				TotalPrice:  domain.NewFlexDecimal(decimal.NewFromInt(75000)),
			},
		},
	}

	for _, override := range overrides {
		override(o)
	}

	return o
}

// CreateTestTransaction creates a test warehouse transaction
func CreateTestTransaction(overrides ...func(*domain.Transaction)) *domain.Transaction {
	tx := &domain.Transaction{
		TransactionID:   "t-001",
		ProductID:       "p-001",
		Quantity:        10,
		TransactionType: "Nhập kho",
		TransactionDate: domain.APITime{Time: time.Now()},
	}

	for _, override := range overrides {
		override(tx)
	}

	return tx
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}
