package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("charge amount must be positive")

const DefaultCurrency = "INR"

// Gateway collects money for a checkout.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
}

// MockGateway approves every valid charge without moving money.
type MockGateway struct {
	Now func() time.Time
}

func (g MockGateway) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return &Receipt{
		ID:        "pay-" + uuid.NewString(),
		Reference: req.Reference,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    StatusSucceeded,
		PaidAt:    now(),
	}, nil
}
