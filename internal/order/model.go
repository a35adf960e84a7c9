package order

import (
	"time"

	"kisanmandi/internal/cart"
	"kisanmandi/internal/user"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
)

type Type string

const (
	TypePurchase Type = "PURCHASE"
	TypeSale     Type = "SALE"
)

// DateLayout is the display format of Order.Date (day/month/year).
const DateLayout = "2/1/2006"

// Order is a frozen snapshot of a checked-out cart. Items and Total never
// change after creation.
type Order struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	Status    Status      `json:"status"`
	Type      Type        `json:"type"`
}

// TypeForRole maps the acting role to the order type: farmers buy inputs,
// everyone else is recorded as a sale.
func TypeForRole(role user.Role) Type {
	if role == user.RoleFarmer {
		return TypePurchase
	}
	return TypeSale
}

func (o Order) clone() Order {
	o.Items = cart.CloneItems(o.Items)
	return o
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.clone()
	}
	return out
}
