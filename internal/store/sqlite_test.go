package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tgift/internal/store"
	"github.com/nhle/tgift/internal/testutil"
)

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeyLanguage, "en"))
	require.NoError(t, s.Set(ctx, store.KeyLanguage, "ru"))

	got, err := s.Get(ctx, store.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "ru", got)
}

func TestSQLiteStore_DeleteAndKeys(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Set(ctx, "a", "1"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestSQLiteStore_Clear(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeySettings, "{}"))
	require.NoError(t, s.Set(ctx, store.KeyNotifications, "[]"))
	require.NoError(t, s.Clear(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tgift.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, store.KeyDeviceID, "abc"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, store.KeyDeviceID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}
