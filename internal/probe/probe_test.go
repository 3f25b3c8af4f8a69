package probe

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
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/testutil"
)

func newProber(t *testing.T, url string) *Prober {
	t.Helper()
	return New(backend.NewClient(url, time.Second), testutil.NewTestLogger(t))
}

func serve(t *testing.T, code int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(code)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestProbe_Success(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantLabel    string
		wantTelegram *bool
	}{
		{"telegram up", `{"telegram_connected": true, "uptime": 12}`, LabelConnected, boolPtr(true)},
		{"telegram down", `{"telegram_connected": false}`, LabelTelegramOffline, boolPtr(false)},
		{"field absent", `{"ok": true}`, LabelConnected, nil},
		{"not json", `OK`, LabelConnected, nil},
		{"empty body", ``, LabelConnected, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newProber(t, serve(t, http.StatusOK, tt.body)).Probe(context.Background())

			assert.True(t, st.Connected)
			assert.Equal(t, model.FailureNone, st.Failure)
			assert.Equal(t, tt.wantLabel, st.Label)
			assert.Equal(t, tt.wantTelegram, st.Telegram)
			assert.Equal(t, http.StatusOK, st.HTTPStatus)
		})
	}
}

func TestProbe_HTTP500(t *testing.T) {
	st := newProber(t, serve(t, http.StatusInternalServerError, `{"detail": "boom"}`)).
		Probe(context.Background())

	assert.False(t, st.Connected)
	assert.Equal(t, model.FailureHTTP, st.Failure)
	assert.Contains(t, st.Label, "500")
}

func TestProbe_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	st := newProber(t, srv.URL).Probe(context.Background())
	httpSt := newProber(t, serve(t, http.StatusInternalServerError, "")).Probe(context.Background())

	assert.False(t, st.Connected)
	assert.Equal(t, model.FailureTransport, st.Failure)
	assert.Equal(t, LabelConnectionFailed, st.Label)
	assert.NotEqual(t, httpSt.Label, st.Label)
}

func TestCheck_ReturnsTypedError(t *testing.T) {
	_, err := newProber(t, serve(t, http.StatusServiceUnavailable, "")).Check(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsStatus(err))

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err = newProber(t, srv.URL).Check(context.Background())
	assert.True(t, backend.IsTransport(err))
}

func boolPtr(b bool) *bool { return &b }

func TestCanceledStatusCheck_IsQuiet(t *testing.T) {
	var buf bytes.Buffer
	p := New(backend.NewClient(serve(t, http.StatusOK, `{}`), time.Second), zerolog.New(&buf).Level(zerolog.InfoLevel))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := p.Probe(ctx)

	assert.False(t, st.Connected)
	assert.Equal(t, model.FailureTransport, st.Failure)
	assert.Empty(t, buf.String())
}
