package inventory

import (
	"context"

	"kisanmandi/internal/store"
)

type Repository interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

type repository struct {
	rec *store.Record
}

func NewRepository(s store.Store) Repository {
	return &repository{rec: store.NewRecord(s, store.KeyInventory)}
}

func (r *repository) Load(ctx context.Context) ([]Item, error) {
	var items []Item
	if _, err := r.rec.Load(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Save(ctx context.Context, items []Item) error {
	return r.rec.Save(ctx, items)
}
