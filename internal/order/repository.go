package order

import (
	"context"

	"kisanmandi/internal/store"
)

// Repository persists the full order history, newest first.
type Repository interface {
	Load(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
}

type repository struct {
	rec *store.Record
}

func NewRepository(s store.Store) Repository {
	return &repository{rec: store.NewRecord(s, store.KeyOrders)}
}

func (r *repository) Load(ctx context.Context) ([]Order, error) {
	var orders []Order
	if _, err := r.rec.Load(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Save(ctx context.Context, orders []Order) error {
	return r.rec.Save(ctx, orders)
}
