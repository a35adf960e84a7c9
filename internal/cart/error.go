package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProduct = errors.New("invalid product")
)
