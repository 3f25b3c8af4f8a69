package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/feed"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/probe"
	"github.com/nhle/tgift/internal/settings"
	appsync "github.com/nhle/tgift/internal/sync"
	"github.com/nhle/tgift/internal/testutil"
	settingsview "github.com/nhle/tgift/internal/ui/settings"
)

type harness struct {
	model Model
	bells int
	sched *appsync.Scheduler
	cache *cache.Cache
}

func newHarness(t *testing.T, s model.Settings) *harness {
	t.Helper()
	return newHarnessWith(t, s, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
}

func newHarnessWith(t *testing.T, s model.Settings, handler http.Handler) *harness {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := testutil.NewTestLogger(t)
	kv := testutil.NewTestStore(t)
	client := backend.NewClient(srv.URL, time.Second)
	c := cache.New(kv, logger)

	sched, err := appsync.New(appsync.Config{
		Period:  5 * time.Second,
		Fetcher: feed.New(client, c, logger),
		Prober:  probe.New(client, logger),
		Cache:   c,
		Logger:  logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { sched.Close() })

	h := &harness{sched: sched, cache: c}
	h.model = New(Deps{
		Scheduler: sched,
		Settings:  settings.New(kv, logger),
		Client:    client,
		Logger:    logger,
		Bell:      func() { h.bells++ },
	}, s, i18n.English)
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var alert = model.Notification{Message: "Gift news: rare drop", Timestamp: "2024-05-01T11:00:00Z"}

func TestNew_CountdownFromSchedulerPeriod(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	assert.Equal(t, 5, h.model.countdown)
	assert.Equal(t, "Loading...", h.model.View())
}

func TestApplyCycle_NewAlertsCue(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	h.send(t, appsync.CycleResultMsg{
		Seq:           1,
		Notifications: []model.Notification{alert},
		Status:        model.ConnectionStatus{Connected: true, Label: probe.LabelConnected},
		NewCount:      1,
	})

	assert.Equal(t, 1, h.bells)
	assert.True(t, h.model.flash)
	assert.Equal(t, 1, h.model.badge)
	assert.False(t, h.model.refreshing)
	assert.Len(t, h.model.alerts.Items(), 1)
	assert.True(t, h.model.indicator.Machine().Connected)
}

func TestApplyCycle_SilentWithoutVibration(t *testing.T) {
	s := model.DefaultSettings()
	s.NotificationSound = model.SoundSilent
	s.Vibration = false
	h := newHarness(t, s)

	h.send(t, appsync.CycleResultMsg{Seq: 1, Notifications: []model.Notification{alert}, NewCount: 1})

	assert.Zero(t, h.bells)
	assert.False(t, h.model.flash)
	assert.Equal(t, 1, h.model.badge)
}

func TestApplyCycle_NoCueWithoutNewAlerts(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	h.send(t, appsync.CycleResultMsg{Seq: 1, Notifications: []model.Notification{alert}})
	assert.Zero(t, h.bells)
	assert.Zero(t, h.model.badge)
}

func TestFlashEnd_IgnoresStaleGeneration(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	h.send(t, appsync.CycleResultMsg{Seq: 1, NewCount: 1})
	h.send(t, appsync.CycleResultMsg{Seq: 2, NewCount: 1})

	h.send(t, flashEndMsg{gen: 1})
	assert.True(t, h.model.flash)

	h.send(t, flashEndMsg{gen: 2})
	assert.False(t, h.model.flash)
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		status model.ConnectionStatus
		want   string
	}{
		{"connected", model.ConnectionStatus{Connected: true, Label: probe.LabelConnected}, "Connected"},
		{"http failure", model.ConnectionStatus{Failure: model.FailureHTTP, HTTPStatus: 500}, "Backend Error (500)"},
		{"transport failure", model.ConnectionStatus{Failure: model.FailureTransport}, "Connection Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, model.DefaultSettings())
			h.send(t, appsync.CycleResultMsg{Seq: 1, Status: tt.status})
			assert.Equal(t, tt.want, h.model.statusLabel())
		})
	}
}

func TestStatusLabel_BeforeFirstProbe(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	assert.Equal(t, h.model.tr.T("refreshing"), h.model.statusLabel())
}

func TestCountdownMsg(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	cmd := h.send(t, appsync.CountdownMsg{Remaining: 3})
	assert.Equal(t, 3, h.model.countdown)
	assert.NotNil(t, cmd)
}

func TestHelpKeyToggles(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	h.send(t, runeKey('?'))
	assert.Equal(t, ViewHelp, h.model.currentView)

	h.send(t, runeKey('?'))
	assert.Equal(t, ViewList, h.model.currentView)
}

func TestRefreshKeyClearsBadge(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	h.send(t, appsync.CycleResultMsg{Seq: 1, NewCount: 2})
	require.Equal(t, 2, h.model.badge)

	h.send(t, runeKey('r'))
	assert.Zero(t, h.model.badge)
	assert.True(t, h.model.refreshing)
}

func TestExecuteCommand_Unknown(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	h.send(t, runeKey(':'))
	require.Equal(t, ViewCommand, h.model.currentView)

	next, cmd := h.model.executeCommand("dance")
	m := next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.noticeError)
	assert.Contains(t, m.notice, "dance")
}

func TestExecuteCommand_Help(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	next, _ := h.model.executeCommand("help")
	assert.Equal(t, ViewHelp, next.(Model).currentView)
}

func TestView_RendersHeaderAndEmptyState(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	h.send(t, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := h.model.View()
	assert.Contains(t, out, h.model.tr.T("appTitle"))
	assert.Contains(t, out, h.model.tr.T("noGiftNews"))
}

func TestReset_InFlightCycleCannotRestoreClearedAlerts(t *testing.T) {
	release := make(chan struct{})
	var feedHits atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathNotifications {
			w.Write([]byte(`{}`))
			return
		}
		if feedHits.Inc() == 1 {
			<-release
			w.Write([]byte(`{"notifications": [{"timestamp": "2024-05-01T11:00:00Z", "message": "Gift news: rare drop"}]}`))
			return
		}
		w.Write([]byte(`{"notifications": []}`))
	})

	h := newHarnessWith(t, model.DefaultSettings(), handler)
	ctx := context.Background()
	h.cache.Save(ctx, []model.Notification{alert})

	h.sched.Start()
	require.Eventually(t, func() bool { return feedHits.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	cmd := h.send(t, settingsview.ResetMsg{})
	require.NotNil(t, cmd)
	assert.False(t, h.sched.Running(), "refresh loop paused before clearing")

	done := cmd()
	require.IsType(t, resetDoneMsg{}, done)
	assert.Empty(t, h.cache.Load(ctx))

	// The held cycle now lands between the clear and the restart.
	close(release)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, h.cache.Load(ctx))

	h.send(t, done)
	assert.True(t, h.sched.Running())
	assert.Empty(t, h.model.alerts.Items())

	require.NoError(t, h.sched.Close())
	assert.Empty(t, h.cache.Load(ctx))
	assert.Empty(t, h.sched.Current())
}

func TestReset_FailureRestartsRefreshLoop(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	h.send(t, settingsview.ResetMsg{})
	require.False(t, h.sched.Running())

	h.send(t, resetDoneMsg{err: assert.AnError})
	assert.True(t, h.sched.Running())
	assert.True(t, h.model.noticeError)
}
