package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

// CategoryInfo describes a browsable category
type CategoryInfo struct {
	Category models.Category
	Label    string
}

var categoryLabels = map[models.Category]string{
	models.CategoryCement:     "Cement & Building Materials",
	models.CategoryPaint:      "Paints & Finishing",
	models.CategoryTools:      "Tools & Hardware",
	models.CategoryPlumbing:   "Plumbing & Fittings",
	models.CategoryElectrical: "Electrical",
	models.CategoryOther:      "Other",
}

// CategoryLabel returns the display label of a category.
func CategoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// CatalogService answers read-only queries over the product list loaded at startup
type CatalogService struct {
	products []models.Product
	byID     map[string]int // lower-cased id -> index
}

// NewCatalogService validates the products and builds the lookup index
func NewCatalogService(products []models.Product) (*CatalogService, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &CatalogService{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		key := strings.ToLower(strings.TrimSpace(p.ID))
		switch {
		case key == "":
			return nil, fmt.Errorf("product %d (%s) has no id", i, p.Name)
		case p.UnitPrice <= 0:
			return nil, fmt.Errorf("product %s has a non-positive price", p.ID)
		case p.UnitPrice > MaxUnitPrice:
			return nil, fmt.Errorf("product %s price %d exceeds the maximum of %d", p.ID, p.UnitPrice, MaxUnitPrice)
		case !p.Category.IsValid():
			return nil, fmt.Errorf("product %s has unknown category %q", p.ID, p.Category)
		}
		if _, dup := c.byID[key]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		c.byID[key] = i
	}

	return c, nil
}

// Products returns every product in catalog order.
func (c *CatalogService) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the browsable categories in menu order.
func (c *CatalogService) Categories() []CategoryInfo {
	browsable := []models.Category{
		models.CategoryCement,
		models.CategoryPaint,
		models.CategoryTools,
		models.CategoryPlumbing,
		models.CategoryElectrical,
	}
	out := make([]CategoryInfo, 0, len(browsable))
	for _, cat := range browsable {
		out = append(out, CategoryInfo{Category: cat, Label: CategoryLabel(cat)})
	}
	return out
}

// ListByCategory returns products of a category in catalog order.
func (c *CatalogService) ListByCategory(category models.Category) []models.Product {
	results := []models.Product{}
	for _, p := range c.products {
		if p.Category == category {
			results = append(results, p)
		}
	}
	return results
}

// Search matches keyword case-insensitively against product names and ids.
func (c *CatalogService) Search(keyword string) []models.Product {
	k := strings.ToLower(strings.TrimSpace(keyword))
	results := []models.Product{}
	if k == "" {
		return results
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), k) || strings.Contains(strings.ToLower(p.ID), k) {
			results = append(results, p)
		}
	}
	return results
}

// FindByID looks up a product by id, ignoring case.
func (c *CatalogService) FindByID(id string) (models.Product, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Total sums quantity x unit price over the lines, saturating at math.MaxInt64.
func (c *CatalogService) Total(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		sub := l.Subtotal()
		if sub > math.MaxInt64-total {
			return math.MaxInt64
		}
		total += sub
	}
	return total
}
