// Package store is the durable key/value layer behind the session engines.
// Every engine owns exactly one key and reaches it through a Record.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys owned by the session engines.
const (
	KeyUser      = "km_user"
	KeyInventory = "km_inventory"
	KeyOrders    = "km_orders"
)

type Store interface {
	// Read returns ErrNotFound when key has no value.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	// Remove deletes key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Record is a typed, JSON-encoded view over a single key.
type Record struct {
	store Store
	key   string
}

func NewRecord(s Store, key string) *Record {
	return &Record{store: s, key: key}
}

func (r *Record) Key() string {
	return r.key
}

// Load decodes the stored value into v. found is false when nothing is
// stored. A value that cannot be decoded yields ErrCorrupt.
func (r *Record) Load(ctx context.Context, v any) (found bool, err error) {
	raw, err := r.store.Read(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", r.key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, r.key, err)
	}
	return true, nil
}

func (r *Record) Save(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.key, err)
	}
	if err := r.store.Write(ctx, r.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

func (r *Record) Delete(ctx context.Context) error {
	if err := r.store.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("remove %s: %w", r.key, err)
	}
	return nil
}

// NotPersisted marks err as a write failure whose in-memory change stands.
func NotPersisted(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrNotPersisted, err)
}
