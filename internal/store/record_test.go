package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Crops []string `json:"crops"`
}

type brokenStore struct{ err error }

func (b brokenStore) Read(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenStore) Write(context.Context, string, []byte) error  { return b.err }
func (b brokenStore) Remove(context.Context, string) error         { return b.err }

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing value", func(t *testing.T) {
		rec := NewRecord(NewMemoryStore(), KeyUser)

		var v sample
		found, err := rec.Load(ctx, &v)

		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Round trip", func(t *testing.T) {
		rec := NewRecord(NewMemoryStore(), KeyUser)
		require.NoError(t, rec.Save(ctx, sample{Name: "Arjun", Crops: []string{"Wheat"}}))

		var v sample
		found, err := rec.Load(ctx, &v)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, sample{Name: "Arjun", Crops: []string{"Wheat"}}, v)
	})

	t.Run("Corrupt value", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Write(ctx, KeyOrders, []byte("{not json")))

		var v []sample
		found, err := NewRecord(s, KeyOrders).Load(ctx, &v)

		assert.False(t, found)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Delete", func(t *testing.T) {
		s := NewMemoryStore()
		rec := NewRecord(s, KeyInventory)
		require.NoError(t, rec.Save(ctx, []sample{}))
		require.NoError(t, rec.Delete(ctx))

		_, err := s.Read(ctx, KeyInventory)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Backend failure", func(t *testing.T) {
		rec := NewRecord(brokenStore{err: errors.New("disk full")}, KeyUser)

		var v sample
		_, err := rec.Load(ctx, &v)
		assert.ErrorContains(t, err, "disk full")
		assert.ErrorContains(t, rec.Save(ctx, v), "write km_user")
		assert.ErrorContains(t, rec.Delete(ctx), "remove km_user")
	})
}

func TestNotPersisted(t *testing.T) {
	assert.NoError(t, NotPersisted(nil))

	cause := errors.New("disk full")
	err := NotPersisted(cause)
	assert.ErrorIs(t, err, ErrNotPersisted)
	assert.ErrorIs(t, err, cause)
}
