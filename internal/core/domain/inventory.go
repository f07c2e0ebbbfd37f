// internal/core/domain/inventory.go
package domain

// InventoryRecord is one row of the upstream /inventories collection.
// Fields arrive denormalized: productName and unitPrice are copies that
// may be stale relative to the product catalog, and productId may be
// absent when the product was deleted upstream.
type InventoryRecord struct {
	InventoryID     string      `json:"inventoryId"`
	ProductID       string      `json:"productId,omitempty"`
	ProductName     string      `json:"productName,omitempty"`
	QuantityInStock FlexInt     `json:"quantityInStock"`
	MinimumStock    FlexInt     `json:"minimumStock"`
	MaximumStock    *FlexInt    `json:"maximumStock,omitempty"`
	ReorderPoint    FlexInt     `json:"reorderPoint"`
	UnitPrice       FlexDecimal `json:"unitPrice"`
	UpdatedAt       APITime     `json:"updatedAt"`
}

// MaxStock returns the configured maximum and whether one is set.
// An absent or non-positive maximum means unbounded stock.
func (r *InventoryRecord) MaxStock() (int, bool) {
	if r.MaximumStock == nil {
		return 0, false
	}
	max := r.MaximumStock.Int()
	if max <= 0 {
		return 0, false
	}
	return max, true
}
