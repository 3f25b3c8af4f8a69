package sync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	gosync "sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/feed"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/probe"
	"github.com/nhle/tgift/internal/testutil"
)

type fakeBackend struct {
	feedHits atomic.Int64
	failFeed atomic.Bool
	body     string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case backend.PathStatus:
		w.Write([]byte(`{"status": "ok", "telegram_connected": true}`))
	case backend.PathNotifications:
		b.feedHits.Inc()
		if b.failFeed.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(b.body))
	default:
		http.NotFound(w, r)
	}
}

const feedBody = `{"notifications": [
	{"timestamp": "2024-01-02T00:00:00Z", "message": "Gift news B"}
]}`

var cachedA = model.Notification{Timestamp: "2024-01-01T00:00:00Z", Message: "Gift news A"}

func newScheduler(t *testing.T, period time.Duration, fb *fakeBackend) (*Scheduler, *cache.Cache) {
	t.Helper()

	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	logger := testutil.NewTestLogger(t)
	client := backend.NewClient(srv.URL, time.Second)
	c := cache.New(testutil.NewTestStore(t), logger)

	s, err := New(Config{
		Period:  period,
		Fetcher: feed.New(client, c, logger),
		Prober:  probe.New(client, logger),
		Cache:   c,
		Logger:  logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, c
}

// nextResult runs the subscription until a cycle result arrives.
func nextResult(t *testing.T, s *Scheduler) CycleResultMsg {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		ch := make(chan tea.Msg, 1)
		go func() { ch <- s.WaitForNext()() }()

		select {
		case msg := <-ch:
			if res, ok := msg.(CycleResultMsg); ok {
				return res
			}
		case <-deadline:
			t.Fatal("no cycle result")
		}
	}
}

// arm marks the scheduler running without scheduling the gocron job so
// tests can drive tick by hand.
func arm(s *Scheduler, remaining int) {
	s.mu.Lock()
	s.running = true
	s.remaining = remaining
	s.mu.Unlock()
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestPeriodSeconds(t *testing.T) {
	assert.Equal(t, 5, periodSeconds(0))
	assert.Equal(t, 1, periodSeconds(200*time.Millisecond))
	assert.Equal(t, 7, periodSeconds(7*time.Second))
}

func TestStart_SeedsFromCacheAndRunsCycle(t *testing.T) {
	fb := &fakeBackend{body: feedBody}
	s, c := newScheduler(t, time.Hour, fb)
	ctx := context.Background()
	c.Save(ctx, []model.Notification{cachedA})

	cmd := s.Start()
	require.NotNil(t, cmd)

	res := nextResult(t, s)
	require.Len(t, res.Notifications, 2)
	assert.Equal(t, "Gift news B", res.Notifications[0].Message)
	assert.Equal(t, "Gift news A", res.Notifications[1].Message)
	assert.Equal(t, 1, res.NewCount)
	assert.True(t, res.Status.Connected)
	assert.Equal(t, probe.LabelConnected, res.Status.Label)
	assert.NoError(t, res.Err)

	assert.Equal(t, res.Notifications, c.Load(ctx))
	assert.Equal(t, res.Notifications, s.Current())
}

func TestTick_RunsCycleWhenCountdownReachesZero(t *testing.T) {
	fb := &fakeBackend{body: feedBody}
	s, _ := newScheduler(t, 2*time.Second, fb)
	arm(s, 2)

	s.tick()
	s.wg.Wait()
	assert.EqualValues(t, 0, fb.feedHits.Load())
	assert.Equal(t, CountdownMsg{Remaining: 1}, <-s.msgs)

	s.tick()
	s.wg.Wait()
	assert.EqualValues(t, 1, fb.feedHits.Load())

	var countdown, results int
	for len(s.msgs) > 0 {
		switch msg := (<-s.msgs).(type) {
		case CountdownMsg:
			countdown++
			assert.Equal(t, 2, msg.Remaining)
		case CycleResultMsg:
			results++
		}
	}
	assert.Equal(t, 1, countdown)
	assert.Equal(t, 1, results)
}

func TestTick_IgnoredWhenStopped(t *testing.T) {
	fb := &fakeBackend{body: feedBody}
	s, _ := newScheduler(t, time.Second, fb)

	s.tick()
	s.wg.Wait()

	assert.Zero(t, len(s.msgs))
	assert.EqualValues(t, 0, fb.feedHits.Load())
}

func TestApply_DropsStaleResults(t *testing.T) {
	s, _ := newScheduler(t, time.Hour, &fakeBackend{body: feedBody})
	arm(s, 5)
	ctx := context.Background()

	newer := []model.Notification{{Timestamp: "2024-01-03T00:00:00Z", Message: "news newer"}}
	older := []model.Notification{{Timestamp: "2024-01-02T00:00:00Z", Message: "news older"}}

	s.apply(ctx, 2, newer, model.ConnectionStatus{Connected: true}, nil)
	s.apply(ctx, 1, older, model.ConnectionStatus{Connected: false}, nil)

	assert.Equal(t, newer, s.Current())
	require.Len(t, s.msgs, 1)
	res := (<-s.msgs).(CycleResultMsg)
	assert.EqualValues(t, 2, res.Seq)
	assert.True(t, res.Status.Connected)
}

func TestApply_DropsResultsAfterStop(t *testing.T) {
	s, c := newScheduler(t, time.Hour, &fakeBackend{body: feedBody})
	arm(s, 5)
	ctx := context.Background()

	s.Stop()
	s.Stop()

	s.apply(ctx, 1, []model.Notification{cachedA}, model.ConnectionStatus{Connected: true}, nil)

	assert.Zero(t, len(s.msgs))
	assert.Empty(t, s.Current())
	assert.Empty(t, c.Load(ctx))
}

func TestApply_FailedFetchKeepsListAndCache(t *testing.T) {
	s, c := newScheduler(t, time.Hour, &fakeBackend{body: feedBody})
	arm(s, 5)
	ctx := context.Background()

	s.apply(ctx, 1, []model.Notification{cachedA}, model.ConnectionStatus{Connected: true}, nil)
	<-s.msgs

	failure := errors.New("boom")
	s.apply(ctx, 2, nil, model.ConnectionStatus{Label: probe.LabelConnectionFailed}, failure)

	res := (<-s.msgs).(CycleResultMsg)
	assert.Equal(t, []model.Notification{cachedA}, res.Notifications)
	assert.Zero(t, res.NewCount)
	assert.ErrorIs(t, res.Err, failure)
	assert.Equal(t, []model.Notification{cachedA}, c.Load(ctx))
}

func TestCycle_FetchErrorStillReportsStatus(t *testing.T) {
	fb := &fakeBackend{body: feedBody}
	fb.failFeed.Store(true)
	s, _ := newScheduler(t, time.Hour, fb)
	arm(s, 5)

	s.cycle(s.seq.Inc())

	res := (<-s.msgs).(CycleResultMsg)
	assert.True(t, res.Status.Connected)
	assert.True(t, backend.IsStatus(res.Err))
	assert.Empty(t, res.Notifications)
}

func TestRefreshNow_ResetsCountdown(t *testing.T) {
	fb := &fakeBackend{body: feedBody}
	s, _ := newScheduler(t, 3*time.Second, fb)
	arm(s, 1)

	s.RefreshNow()
	s.wg.Wait()

	assert.EqualValues(t, 1, fb.feedHits.Load())
	s.mu.Lock()
	assert.Equal(t, 3, s.remaining)
	s.mu.Unlock()
}

func TestClose_UnblocksSubscription(t *testing.T) {
	s, _ := newScheduler(t, time.Hour, &fakeBackend{body: feedBody})

	ch := make(chan tea.Msg, 1)
	go func() { ch <- s.WaitForNext()() }()

	require.NoError(t, s.Close())
	select {
	case msg := <-ch:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("subscription still blocked")
	}
	assert.NoError(t, s.Close())
}

func TestStart_DiscardsCyclesFromBeforeRestart(t *testing.T) {
	s, c := newScheduler(t, time.Hour, &fakeBackend{body: `{"notifications": []}`})
	arm(s, 5)
	ctx := context.Background()

	stale := s.seq.Inc()
	s.Stop()
	c.Clear(ctx)
	s.Start()

	s.apply(ctx, stale, []model.Notification{cachedA}, model.ConnectionStatus{Connected: true}, nil)
	assert.Empty(t, s.Current())
}

func TestStart_ConcurrentCallsArmOneJob(t *testing.T) {
	s, _ := newScheduler(t, time.Hour, &fakeBackend{body: feedBody})

	var wg gosync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Start()
		}()
	}
	wg.Wait()

	assert.True(t, s.Running())
	assert.Len(t, s.cron.Jobs(), 1)

	s.Stop()
	assert.False(t, s.Running())
	assert.Empty(t, s.cron.Jobs())
}
