// internal/core/domain/order.go
package domain

// Account identifies the staff member who recorded an order.
type Account struct {
	AccountID string   `json:"accountId"`
	Username  string   `json:"username,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// Customer is the buyer attached to an order. Orders reference the
// customer either nested or by bare id.
type Customer struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName,omitempty"`
	Quantity    FlexInt     `json:"quantity"`
	TotalPrice  FlexDecimal `json:"totalPrice"`
}

// Order is one row of the upstream /orders collection. PaymentStatus is
// free text and must match a configured "paid" sentinel before the
// order participates in any revenue aggregate.
type Order struct {
	OrderID       string      `json:"orderId"`
	CustomerID    string      `json:"customerId,omitempty"`
	Customer      *Customer   `json:"customer,omitempty"`
	AccountID     string      `json:"accountId,omitempty"`
	Account       *Account    `json:"account,omitempty"`
	TotalAmount   FlexDecimal `json:"totalAmount"`
	PaymentStatus string      `json:"paymentStatus"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	OrderDate     APITime     `json:"orderDate"`
	Items         []OrderItem `json:"items,omitempty"`
}

// StaffID returns the id of the staff account behind the order,
// preferring the nested account object over the bare field.
func (o *Order) StaffID() string {
	if o.Account != nil && o.Account.AccountID != "" {
		return o.Account.AccountID
	}
	return o.AccountID
}
