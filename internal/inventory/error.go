package inventory

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidName     = errors.New("inventory item needs a name")
	ErrInvalidQuantity = errors.New("inventory quantity must not be negative")
	ErrInvalidPrice    = errors.New("inventory price must not be negative")
	ErrInvalidLoss     = errors.New("loss record must not be negative")
)
