package app

import "errors"

var (
	ErrFarmerOnly         = errors.New("only farmers can manage inventory")
	ErrUnknownProduct     = errors.New("product not found in catalog")
	ErrVoiceUnavailable   = errors.New("voice input is not available")
	ErrPaymentDeclined    = errors.New("payment was not completed")
	ErrUnknownStoreDriver = errors.New("unknown store driver")
)
