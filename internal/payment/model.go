package payment

import "time"

type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

type ChargeRequest struct {
	Reference string
	PayerID   string
	Amount    float64
	Currency  string
}

type Receipt struct {
	ID        string
	Reference string
	Amount    float64
	Currency  string
	Status    Status
	PaidAt    time.Time
}
