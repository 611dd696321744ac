package models

import (
	"fmt"
	"strings"
)

// Product represents an item on the point-of-sale catalog
type Product struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    Money    `json:"price" yaml:"price"`
	Category Category `json:"category" yaml:"category"`
	Image    string   `json:"image" yaml:"image"`
}

// Category represents the catalog section a product is listed under
type Category string

const (
	// CategoryAll is a filter value only; no product carries it.
	CategoryAll Category = "All"

	// Catalog categories
	CategoryFood     Category = "food"
	CategoryDrinks   Category = "drinks"
	CategorySides    Category = "sides"
	CategoryDesserts Category = "desserts"
)

// Categories returns the filter tabs in display order
func Categories() []Category {
	return []Category{CategoryAll, CategoryFood, CategoryDrinks, CategorySides, CategoryDesserts}
}

// IsValid reports whether c is one of the fixed product categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryDrinks, CategorySides, CategoryDesserts:
		return true
	}
	return false
}

// ValidateProduct validates a catalog entry
func ValidateProduct(p *Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d: name is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %d: price must not be negative", p.ID)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
	}
	return nil
}

// IsInCategory checks if the product is listed under category; CategoryAll matches everything
func (p *Product) IsInCategory(category Category) bool {
	return category == CategoryAll || p.Category == category
}

// NameContains checks whether the product name contains search, ignoring case
func (p *Product) NameContains(search string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(search))
}
