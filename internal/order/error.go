package order

import "errors"

var (
	ErrEmptyCart = errors.New("cannot place an order from an empty cart")
)
