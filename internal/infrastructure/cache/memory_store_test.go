package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "summary", []byte(`{"orders":3}`), 0))

	val, err := store.Get(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"orders":3}`), val)

	require.NoError(t, store.Delete(ctx, "summary"))
	_, err = store.Get(ctx, "summary")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "summary", []byte("v"), 10*time.Millisecond))

	val, err := store.Get(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(ctx, "summary")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_DeleteMissingIsNoError(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Delete(context.Background(), "never-set"))
}
