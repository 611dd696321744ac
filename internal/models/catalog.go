package models

import "fmt"

const defaultImage = "assets/food.png"

// DefaultCatalog returns the built-in mock catalog.
func DefaultCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Burger", Price: 899, Category: CategoryFood, Image: defaultImage},
		{ID: 2, Name: "Pizza", Price: 1299, Category: CategoryFood, Image: defaultImage},
		{ID: 3, Name: "Fries", Price: 499, Category: CategorySides, Image: defaultImage},
		{ID: 4, Name: "Salad", Price: 799, Category: CategoryFood, Image: defaultImage},
		{ID: 5, Name: "Cola", Price: 299, Category: CategoryDrinks, Image: defaultImage},
		{ID: 6, Name: "Milkshake", Price: 599, Category: CategoryDrinks, Image: defaultImage},
		{ID: 7, Name: "Ice Cream", Price: 399, Category: CategoryDesserts, Image: defaultImage},
		{ID: 8, Name: "Chicken Wings", Price: 999, Category: CategoryFood, Image: defaultImage},
	}
}

// Catalog is an immutable, ordered product list with lookup by id.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// NewCatalog validates products and builds a catalog. Ids must be unique.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(c.products, products)
	for i := range c.products {
		p := &c.products[i]
		if err := ValidateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by id.
func (c *Catalog) Product(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Filter returns the catalog entries matching category and search.
func (c *Catalog) Filter(category Category, search string) []Product {
	return Filter(c.products, category, search)
}

// Filter keeps products in category (or any, for CategoryAll) whose name
// contains search case-insensitively. Input order is preserved.
func Filter(products []Product, category Category, search string) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.IsInCategory(category) && p.NameContains(search) {
			out = append(out, *p)
		}
	}
	return out
}
