package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/store"
)

type countingStore struct {
	inner store.Store
	gets  int
}

func (c *countingStore) Get(ctx context.Context, path string) ([]byte, error) {
	c.gets++
	return c.inner.Get(ctx, path)
}

func (c *countingStore) Put(ctx context.Context, path string, data []byte) error {
	return c.inner.Put(ctx, path, data)
}

func (c *countingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return c.inner.List(ctx, prefix)
}

func TestCachedGetHitsInnerOnce(t *testing.T) {
	inner, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	counting := &countingStore{inner: inner}
	cached, err := store.NewCached(counting, t.TempDir(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, inner.Put(ctx, "compare/alpha.json", []byte(`{"a": 1}`)))

	for i := 0; i < 3; i++ {
		data, err := cached.Get(ctx, "compare/alpha.json")
		require.NoError(t, err)
		require.JSONEq(t, `{"a": 1}`, string(data))
	}
	require.Equal(t, 1, counting.gets)
}

func TestCachedPutInvalidates(t *testing.T) {
	inner, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	counting := &countingStore{inner: inner}
	cached, err := store.NewCached(counting, t.TempDir(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cached.Put(ctx, "compare/alpha.json", []byte(`{"v": 1}`)))
	_, err = cached.Get(ctx, "compare/alpha.json")
	require.NoError(t, err)

	require.NoError(t, cached.Put(ctx, "compare/alpha.json", []byte(`{"v": 2}`)))
	data, err := cached.Get(ctx, "compare/alpha.json")
	require.NoError(t, err)
	require.JSONEq(t, `{"v": 2}`, string(data))
}

func TestCachedExpiry(t *testing.T) {
	inner, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	counting := &countingStore{inner: inner}
	cached, err := store.NewCached(counting, t.TempDir(), time.Nanosecond)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, inner.Put(ctx, "compare/alpha.json", []byte(`{}`)))

	_, err = cached.Get(ctx, "compare/alpha.json")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cached.Get(ctx, "compare/alpha.json")
	require.NoError(t, err)
	require.Equal(t, 2, counting.gets)
}

func TestCachedMissPassesThrough(t *testing.T) {
	inner, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	cached, err := store.NewCached(inner, t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, err = cached.Get(context.Background(), "compare/ghost.json")
	require.ErrorIs(t, err, store.ErrNotFound)
}
