package inventory

import "kisanmandi/internal/product"

// Item is a stock entry in a farmer's ledger.
type Item struct {
	product.Product
	AddedDate  string   `json:"addedDate"`
	LossRecord *float64 `json:"lossRecord,omitempty"`
}
