package app

import (
	"kisanmandi/internal/cart"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/order"
	"kisanmandi/internal/user"
)

// State is a point-in-time copy of everything the presentation renders.
// Mutating it has no effect on the App.
type State struct {
	User      *user.User
	Language  user.Language
	Cart      []cart.Item
	CartTotal float64
	Orders    []order.Order
	Inventory []inventory.Item
	Online    bool
}

// Listener receives the state after a mutation.
type Listener func(State)
