package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/store"
	"github.com/nhle/tgift/internal/testutil"
)

// failingKV fails every operation.
type failingKV struct{}

var errBroken = errors.New("disk on fire")

func (failingKV) Get(context.Context, string) (string, error) { return "", errBroken }
func (failingKV) Set(context.Context, string, string) error   { return errBroken }
func (failingKV) Delete(context.Context, string) error        { return errBroken }
func (failingKV) Keys(context.Context) ([]string, error)      { return nil, errBroken }
func (failingKV) Clear(context.Context) error                 { return errBroken }

func TestLoad_Empty(t *testing.T) {
	c := New(testutil.NewTestStore(t), testutil.NewTestLogger(t))

	got := c.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveThenLoad(t *testing.T) {
	c := New(testutil.NewTestStore(t), testutil.NewTestLogger(t))
	ctx := context.Background()

	list := []model.Notification{
		{Headline: "Gift", Message: "news B", Timestamp: "2024-01-02T00:00:00Z", ChannelID: "c1"},
		{Message: "news A", Timestamp: "2024-01-01T00:00:00Z"},
	}
	c.Save(ctx, list)

	assert.Equal(t, list, c.Load(ctx))
}

func TestLoad_CorruptPayload(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyNotifications, "{not json"))

	got := New(kv, testutil.NewTestLogger(t)).Load(ctx)
	assert.Empty(t, got)
}

func TestLoad_NullPayload(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyNotifications, "null"))

	got := New(kv, testutil.NewTestLogger(t)).Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFailingStoreIsSwallowed(t *testing.T) {
	c := New(failingKV{}, testutil.NewTestLogger(t))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		c.Save(ctx, []model.Notification{{Message: "news"}})
		c.Clear(ctx)
	})
	assert.Empty(t, c.Load(ctx))
}

func TestClear(t *testing.T) {
	c := New(testutil.NewTestStore(t), testutil.NewTestLogger(t))
	ctx := context.Background()

	c.Save(ctx, []model.Notification{{Message: "news"}})
	c.Clear(ctx)

	assert.Empty(t, c.Load(ctx))
}
