package feed

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/testutil"
)

func newFetcher(t *testing.T, h http.HandlerFunc) (*Fetcher, *cache.Cache) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger := testutil.NewTestLogger(t)
	c := cache.New(testutil.NewTestStore(t), logger)
	return New(backend.NewClient(srv.URL, time.Second), c, logger), c
}

var cachedA = []model.Notification{{Timestamp: "2024-01-01T00:00:00Z", Message: "Gift news A"}}

func TestFetch_MergesAndSaves(t *testing.T) {
	f, c := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(`{"notifications": [
			{"timestamp": "2024-01-01T00:00:00Z", "message": "Gift news A"},
			{"timestamp": "2024-01-02T00:00:00Z", "message": "Gift news B", "channel_id": "42"},
			{"timestamp": "2024-01-03T00:00:00Z", "message": "Test notification"}
		]}`))
	})
	ctx := context.Background()

	got := f.Fetch(ctx, cachedA)

	require.Len(t, got, 2)
	assert.Equal(t, "Gift news B", got[0].Message)
	assert.Equal(t, "42", got[0].ChannelID)
	assert.Equal(t, "Gift news A", got[1].Message)
	assert.Equal(t, got, c.Load(ctx))
}

func TestFetch_FailSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"notifications": "oops"`))
		}},
		{"missing field", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"other": []}`))
		}},
		{"empty list", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"notifications": []}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFetcher(t, tt.handler)
			assert.Equal(t, cachedA, f.Fetch(context.Background(), cachedA))
		})
	}
}

func TestFetch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logger := testutil.NewTestLogger(t)
	c := cache.New(testutil.NewTestStore(t), logger)
	f := New(backend.NewClient(srv.URL, time.Second), c, logger)
	ctx := context.Background()

	assert.Equal(t, cachedA, f.Fetch(ctx, cachedA))
	assert.Empty(t, c.Load(ctx), "failed fetch must not write the cache")
}

func TestPull_ReturnsTypedError(t *testing.T) {
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	got, err := f.Pull(context.Background(), cachedA)

	assert.Equal(t, cachedA, got)
	assert.True(t, backend.IsStatus(err))
	assert.Equal(t, http.StatusBadGateway, backend.StatusCode(err))
}

func TestFetch_CanceledKeepsCacheAndIsQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"notifications": [{"timestamp": "2024-01-02T00:00:00Z", "message": "Gift news B"}]}`))
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	c := cache.New(testutil.NewTestStore(t), logger)
	f := New(backend.NewClient(srv.URL, time.Second), c, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, cachedA, f.Fetch(ctx, cachedA))
	assert.Empty(t, c.Load(context.Background()))
	assert.Empty(t, buf.String())
}
