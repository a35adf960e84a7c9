package user

import (
	"context"

	"kisanmandi/internal/store"
)

// Repository persists the session user under its own store key.
type Repository interface {
	// Load returns nil, nil when no user is stored.
	Load(ctx context.Context) (*User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context) error
}

type repository struct {
	rec *store.Record
}

func NewRepository(s store.Store) Repository {
	return &repository{rec: store.NewRecord(s, store.KeyUser)}
}

func (r *repository) Load(ctx context.Context) (*User, error) {
	var u User
	found, err := r.rec.Load(ctx, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Save(ctx context.Context, u *User) error {
	return r.rec.Save(ctx, u)
}

func (r *repository) Delete(ctx context.Context) error {
	return r.rec.Delete(ctx)
}
