package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/store"
)

func TestFSStoreRoundTrip(t *testing.T) {
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "compare/alpha.json", []byte(`{"a": 1}`)))

	data, err := st.Get(ctx, "compare/alpha.json")
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1}`, string(data))
}

func TestFSStoreGetMissing(t *testing.T) {
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = st.Get(context.Background(), "compare/ghost.json")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFSStoreListByPrefix(t *testing.T) {
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "compare/beta.json", []byte(`{}`)))
	require.NoError(t, st.Put(ctx, "compare/alpha.json", []byte(`{}`)))
	require.NoError(t, st.Put(ctx, "gather/submission-1.json", []byte(`{}`)))

	paths, err := st.List(ctx, "compare/")
	require.NoError(t, err)
	require.Equal(t, []string{"compare/alpha.json", "compare/beta.json"}, paths)

	all, err := st.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestFSStoreRequiresRoot(t *testing.T) {
	_, err := store.NewFS("")
	require.Error(t, err)
}
