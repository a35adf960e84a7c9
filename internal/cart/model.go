package cart

import "kisanmandi/internal/product"

// Item is a product line in the cart. Product fields are copied at the
// first add and never refreshed, so later catalog price changes do not
// reach an existing line.
type Item struct {
	product.Product
	CartQuantity int `json:"cartQuantity"`
}
