// internal/core/analytics/resolver.go
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// ProductIndex resolves product references from inventory records.
// The index is built once per aggregation pass; lookups are O(1) since
// the join runs once per inventory row and dominates cost at scale.
type ProductIndex struct {
	byID map[string]*domain.Product
}

// NewProductIndex builds an index over the product collection.
// Duplicate ids keep the first occurrence.
func NewProductIndex(products []domain.Product) *ProductIndex {
	idx := &ProductIndex{byID: make(map[string]*domain.Product, len(products))}
	for i := range products {
		p := &products[i]
		if p.ProductID == "" {
			continue
		}
		if _, ok := idx.byID[p.ProductID]; !ok {
			idx.byID[p.ProductID] = p
		}
	}
	return idx
}

// Resolve returns the product referenced by the record, or nil when the
// record has no product id or no product matches. Callers fall back to
// the record's denormalized fields; a nil result is never an error.
func (idx *ProductIndex) Resolve(rec *domain.InventoryRecord) *domain.Product {
	if rec.ProductID == "" {
		return nil
	}
	return idx.byID[rec.ProductID]
}

// DisplayName resolves the record's display name: catalog name first,
// then the denormalized copy, then the unknown placeholder.
func (idx *ProductIndex) DisplayName(rec *domain.InventoryRecord, cfg Config) string {
	if p := idx.Resolve(rec); p != nil && p.ProductName != "" {
		return p.ProductName
	}
	if rec.ProductName != "" {
		return rec.ProductName
	}
	return cfg.unknownCategoryLabel()
}

// CategoryName resolves the record's category with the same precedence:
// catalog category first, then the unknown placeholder. Inventory rows
// carry no category of their own.
func (idx *ProductIndex) CategoryName(rec *domain.InventoryRecord, cfg Config) string {
	if p := idx.Resolve(rec); p != nil {
		if name := p.ResolvedCategoryName(); name != "" {
			return name
		}
	}
	return cfg.unknownCategoryLabel()
}

// UnitPrice resolves the record's unit price: catalog unit price, then
// catalog cost price, then the denormalized inventory price, then zero.
func (idx *ProductIndex) UnitPrice(rec *domain.InventoryRecord) decimal.Decimal {
	if p := idx.Resolve(rec); p != nil {
		if p.UnitPrice.IsPositive() {
			return p.UnitPrice.Decimal
		}
		if p.CostPrice.IsPositive() {
			return p.CostPrice.Decimal
		}
	}
	if rec.UnitPrice.IsPositive() {
		return rec.UnitPrice.Decimal
	}
	return decimal.Zero
}
