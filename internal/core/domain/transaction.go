// internal/core/domain/transaction.go
package domain

// Transaction is one row of the upstream warehouse transaction log.
// The log is append-only; rows are never mutated once written.
//
// TransactionType is free text. Observed values include localized
// labels ("Nhập kho", "Bán ra") alongside raw IN/OUT tokens, so the
// analytics layer classifies direction by marker tokens rather than
// exact equality.
type Transaction struct {
	TransactionID   string  `json:"transactionId"`
	ProductID       string  `json:"productId,omitempty"`
	ProductName     string  `json:"productName,omitempty"`
	Quantity        FlexInt `json:"quantity"`
	TransactionType string  `json:"transactionType"`
	TransactionDate APITime `json:"transactionDate"`
}

// TransactionPage is the paginated envelope returned by
// /inventory-transactions.
type TransactionPage struct {
	Content       []Transaction `json:"content"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
}
