// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// fixedSource serves prebuilt collections so benchmarks measure the
// analytics computations, not fetch latency.
type fixedSource struct {
	records      []domain.InventoryRecord
	products     []domain.Product
	orders       []domain.Order
	transactions []domain.Transaction
}

func (s *fixedSource) Inventories(ctx context.Context) ([]domain.InventoryRecord, error) {
	return s.records, nil
}

func (s *fixedSource) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *fixedSource) Categories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *fixedSource) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *fixedSource) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions, nil
}

func (s *fixedSource) Ping(ctx context.Context) error {
	return nil
}

var benchCategories = []string{"Đồ uống", "Đồ ăn", "Bánh ngọt", "Khác"}

func makeRecords(n int) []domain.InventoryRecord {
	records := make([]domain.InventoryRecord, n)
	for i := 0; i < n; i++ {
		max := domain.FlexInt(200)
		records[i] = domain.InventoryRecord{
			InventoryID:     fmt.Sprintf("inv-%05d", i),
			ProductID:       fmt.Sprintf("p-%05d", i),
			ProductName:     fmt.Sprintf("Sản phẩm %d", i),
			QuantityInStock: domain.FlexInt(i % 250),
			MinimumStock:    5,
			MaximumStock:    &max,
			ReorderPoint:    domain.FlexInt(10 + i%20),
			UnitPrice:       domain.NewFlexDecimal(decimal.NewFromInt(int64(1000 * (i%40 + 1)))),
			UpdatedAt:       domain.APITime{Time: time.Now()},
		}
	}
	return records
}

func makeProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := 0; i < n; i++ {
		products[i] = domain.Product{
			ProductID:    fmt.Sprintf("p-%05d", i),
			ProductName:  fmt.Sprintf("Sản phẩm %d", i),
			UnitPrice:    domain.NewFlexDecimal(decimal.NewFromInt(int64(1000 * (i%40 + 1)))),
			CostPrice:    domain.NewFlexDecimal(decimal.NewFromInt(int64(600 * (i%40 + 1)))),
			CategoryName: benchCategories[i%len(benchCategories)],
		}
	}
	return products
}

func makeOrders(n int) []domain.Order {
	statuses := []string{"PAID", "PENDING", "COMPLETED", "CANCELLED"}
	methods := []string{"CASH", "CARD", "TRANSFER"}
	orders := make([]domain.Order, n)
	for i := 0; i < n; i++ {
		orders[i] = domain.Order{
			OrderID:       fmt.Sprintf("o-%05d", i),
			AccountID:     fmt.Sprintf("staff-%d", i%8),
			TotalAmount:   domain.NewFlexDecimal(decimal.NewFromInt(int64(5000 * (i%30 + 1)))),
			PaymentStatus: statuses[i%len(statuses)],
			PaymentMethod: methods[i%len(methods)],
			OrderDate:     domain.APITime{Time: time.Now().AddDate(0, 0, -(i % 45))},
			Items: []domain.OrderItem{
				{
					ProductID:   fmt.Sprintf("p-%05d", i%200),
					ProductName: fmt.Sprintf("Sản phẩm %d", i%200),
					Quantity:    domain.FlexInt(1 + i%5),
					TotalPrice:  domain.NewFlexDecimal(decimal.NewFromInt(int64(5000 * (i%30 + 1)))),
				},
			},
		}
	}
	return orders
}

func makeTransactions(n int) []domain.Transaction {
	types := []string{"Nhập kho", "Xuất kho", "BÁN", "IN", "Kiểm kê"}
	transactions := make([]domain.Transaction, n)
	for i := 0; i < n; i++ {
		transactions[i] = domain.Transaction{
			TransactionID:   fmt.Sprintf("t-%05d", i),
			ProductID:       fmt.Sprintf("p-%05d", i%200),
			Quantity:        domain.FlexInt(1 + i%20),
			TransactionType: types[i%len(types)],
			TransactionDate: domain.APITime{Time: time.Now().AddDate(0, 0, -(i % 30))},
		}
	}
	return transactions
}
