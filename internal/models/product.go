package models

import (
	"math"
	"strings"
)

// Category groups products for browsing
type Category string

// Category constants
const (
	CategoryCement     Category = "cement"
	CategoryPaint      Category = "paint"
	CategoryTools      Category = "tools"
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryOther      Category = "other"
)

// AllCategories lists every known category, browsable ones first
var AllCategories = []Category{
	CategoryCement,
	CategoryPaint,
	CategoryTools,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a keyword such as "Cement" to its category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// Product is a catalog item. Prices are in the smallest currency unit.
type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	UnitPrice   int64    `json:"unit_price" yaml:"price"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Available   bool     `json:"available" yaml:"available"`
	Unit        string   `json:"unit" yaml:"unit"` // e.g. "bag", "L", "pcs"
}

// CartLine is one entry in a sender's cart
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Note     string  `json:"note,omitempty"`
}

// Subtotal returns quantity x unit price for the line, saturating at math.MaxInt64.
// Non-positive quantities or prices give 0.
func (l CartLine) Subtotal() int64 {
	qty := int64(l.Quantity)
	if qty <= 0 || l.Product.UnitPrice <= 0 {
		return 0
	}
	if qty > math.MaxInt64/l.Product.UnitPrice {
		return math.MaxInt64
	}
	return l.Product.UnitPrice * qty
}
