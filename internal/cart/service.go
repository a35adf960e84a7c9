package cart

import (
	"kisanmandi/internal/product"

	"github.com/shopspring/decimal"
)

// Service holds the cart of the active session. It is not persisted.
type Service interface {
	AddToCart(p product.Product) (Item, error)
	RemoveFromCart(productID string) bool
	ClearCart()
	Items() []Item
	Len() int
	Total() float64
}

// service keeps lines in insertion order; at most one line per product id.
type service struct {
	items []Item
}

func NewService() Service {
	return &service{}
}

// AddToCart bumps the quantity of an existing line or appends a new one.
// Products need an id and a positive price.
func (s *service) AddToCart(p product.Product) (Item, error) {
	if p.ID == "" || p.Price <= 0 {
		return Item{}, ErrInvalidProduct
	}

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].CartQuantity++
			return s.items[i], nil
		}
	}

	item := Item{Product: p, CartQuantity: 1}
	s.items = append(s.items, item)
	return item, nil
}

// RemoveFromCart drops the whole line regardless of quantity. It reports
// whether a line was removed.
func (s *service) RemoveFromCart(productID string) bool {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *service) ClearCart() {
	s.items = nil
}

func (s *service) Items() []Item {
	return CloneItems(s.items)
}

func (s *service) Len() int {
	return len(s.items)
}

func (s *service) Total() float64 {
	return ComputeTotal(s.items)
}

// ComputeTotal sums price * cartQuantity over items using decimal
// arithmetic.
func ComputeTotal(items []Item) float64 {
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.CartQuantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

// CloneItems returns an independent copy of items.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
