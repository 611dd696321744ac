// Package cart holds the order's line items. Every operation returns a new
// Cart and leaves its receiver untouched, so a Cart can be shared freely
// between session snapshots.
package cart

import (
	"errors"

	"orderdesk/internal/models"
)

// ErrLineNotFound is returned when decrementing a product that is not in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// Line is one product plus its quantity. Quantity is always at least 1.
type Line struct {
	models.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() models.Money {
	return l.Price.Mul(l.Quantity)
}

// Cart is an ordered set of lines, one per product id, in first-add order.
type Cart struct {
	lines []Line
}

// New returns a cart holding copies of lines. It is mostly useful for
// restoring a cart from a serialized session.
func New(lines ...Line) Cart {
	var c Cart
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c Cart) index(id int) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	return Cart{lines: lines}
}

// Add increments the line for p, or appends a new line with quantity 1.
func (c Cart) Add(p models.Product) Cart {
	next := c.clone()
	if i := next.index(p.ID); i >= 0 {
		next.lines[i].Quantity++
		return next
	}
	next.lines = append(next.lines, Line{Product: p, Quantity: 1})
	return next
}

// Decrement lowers the quantity of product id by one, dropping the line
// when it would reach zero.
func (c Cart) Decrement(id int) (Cart, error) {
	i := c.index(id)
	if i < 0 {
		return c, ErrLineNotFound
	}
	if c.lines[i].Quantity > 1 {
		next := c.clone()
		next.lines[i].Quantity--
		return next, nil
	}
	return c.Delete(id), nil
}

// Delete removes the line for product id. Missing ids are ignored.
func (c Cart) Delete(id int) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := make([]Line, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{lines: lines}
}

// Line returns the line for product id.
func (c Cart) Line(id int) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Contains reports whether product id has a line.
func (c Cart) Contains(id int) bool {
	return c.index(id) >= 0
}

// Lines returns a copy of the lines in first-add order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len is the number of distinct products.
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total is the sum of price times quantity over all lines.
func (c Cart) Total() models.Money {
	var total models.Money
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
