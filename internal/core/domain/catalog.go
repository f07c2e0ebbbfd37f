// internal/core/domain/catalog.go
package domain

// Category is one row of the upstream /categories collection.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is one row of the upstream /products collection. The catalog
// owns these rows; inventory records reference them by productId only.
// Category information arrives either flattened (categoryName) or
// nested, depending on the upstream API version.
type Product struct {
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	UnitPrice    FlexDecimal `json:"unitPrice"`
	CostPrice    FlexDecimal `json:"costPrice"`
	CategoryName string      `json:"categoryName,omitempty"`
	Category     *Category   `json:"category,omitempty"`
}

// ResolvedCategoryName returns the category name from whichever shape
// the payload used, or "" when the product carries none.
func (p *Product) ResolvedCategoryName() string {
	if p.CategoryName != "" {
		return p.CategoryName
	}
	if p.Category != nil {
		return p.Category.Name
	}
	return ""
}
