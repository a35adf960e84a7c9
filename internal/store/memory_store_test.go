package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"id":"f1"}`)
	require.NoError(t, s.Write(ctx, KeyUser, value))

	// the store keeps its own copy
	value[2] = 'X'
	got, err := s.Read(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"f1"}`, string(got))

	require.NoError(t, s.Remove(ctx, KeyUser))
	require.NoError(t, s.Remove(ctx, KeyUser))
	_, err = s.Read(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Write(ctx, "", value), ErrInvalidKey)
}
