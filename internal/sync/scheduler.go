// Package sync drives the periodic refresh cycle: probe the backend,
// pull the alert feed, and deliver the results to the UI as Bubble Tea
// messages.
package sync

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/feed"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/probe"
)

// DefaultPeriod is the interval between refresh cycles.
const DefaultPeriod = 5 * time.Second

// cycleTimeout bounds one probe+fetch cycle.
const cycleTimeout = 30 * time.Second

// CycleResultMsg is a tea.Msg sent when a refresh cycle is applied.
type CycleResultMsg struct {
	Seq           uint64
	Notifications []model.Notification
	Status        model.ConnectionStatus

	// NewCount is the number of alerts not present before this cycle.
	NewCount int

	// Err is the fetch failure, if any. Notifications is then the
	// previous list.
	Err error
}

// CountdownMsg is a tea.Msg sent once per second while the scheduler runs.
type CountdownMsg struct {
	Remaining int
}

// Config holds the scheduler's collaborators.
type Config struct {
	Period  time.Duration
	Fetcher *feed.Fetcher
	Prober  *probe.Prober
	Cache   *cache.Cache
	Logger  zerolog.Logger
}

// Scheduler runs refresh cycles on a fixed period and counts down to the
// next one. Cycles may overlap; a cycle's result is applied only when no
// newer cycle has been applied already.
type Scheduler struct {
	period  int
	fetcher *feed.Fetcher
	prober  *probe.Prober
	cache   *cache.Cache
	logger  zerolog.Logger

	cron gocron.Scheduler
	msgs chan tea.Msg
	done chan struct{}
	seq  atomic.Uint64
	wg   gosync.WaitGroup

	mu        gosync.Mutex
	job       gocron.Job
	running   bool
	closed    bool
	remaining int
	applied   uint64
	current   []model.Notification
}

// New creates a Scheduler. The underlying gocron scheduler is started
// immediately but no job is armed until Start.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Fetcher == nil || cfg.Prober == nil || cfg.Cache == nil {
		return nil, errors.New("sync: fetcher, prober and cache are required")
	}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	cron.Start()

	return &Scheduler{
		period:  periodSeconds(cfg.Period),
		fetcher: cfg.Fetcher,
		prober:  cfg.Prober,
		cache:   cfg.Cache,
		logger:  logging.Component(cfg.Logger, "sync"),
		cron:    cron,
		msgs:    make(chan tea.Msg, 32),
		done:    make(chan struct{}),
	}, nil
}

func periodSeconds(d time.Duration) int {
	if d <= 0 {
		d = DefaultPeriod
	}
	secs := int(d / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Period returns the refresh period in whole seconds.
func (s *Scheduler) Period() int {
	return s.period
}

// Start cancels any armed countdown, seeds the in-memory list from the
// cache, runs one cycle right away and arms the countdown job. The
// returned command delivers the first message.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.removeJobLocked()
	s.current = s.cache.Load(context.Background())
	s.remaining = s.period
	s.running = true
	// Cycles launched before this start must not overwrite the fresh seed.
	s.applied = s.seq.Load()

	// The first tick fires a second from now, so arming under mu is safe
	// and keeps concurrent starts down to one job.
	job, err := s.cron.NewJob(
		gocron.DurationJob(time.Second),
		gocron.NewTask(s.tick),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("arming countdown job")
	} else {
		s.job = job
	}
	s.mu.Unlock()

	s.launch()

	s.logger.Debug().Int("period", s.period).Msg("scheduler started")
	return s.WaitForNext()
}

// Stop disarms the countdown. Results of cycles still in flight are
// dropped, and once Stop returns no cycle writes the cache until the next
// Start. Calling Stop more than once is harmless.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.removeJobLocked()
	s.logger.Debug().Msg("scheduler stopped")
}

// Close stops the scheduler and shuts down gocron. Pending WaitForNext
// commands return nil.
func (s *Scheduler) Close() error {
	s.Stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	return s.cron.Shutdown()
}

// Running reports whether the countdown is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RefreshNow runs a cycle immediately and restarts the countdown.
func (s *Scheduler) RefreshNow() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.remaining = s.period
	remaining := s.remaining
	s.mu.Unlock()

	s.launch()
	s.send(CountdownMsg{Remaining: remaining})
}

// Current returns the most recently applied list.
func (s *Scheduler) Current() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.current))
	copy(out, s.current)
	return out
}

// WaitForNext returns a tea.Cmd that waits for the next scheduler
// message. Call it again after handling each message.
func (s *Scheduler) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.msgs:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// tick is the countdown job body, run once per second.
func (s *Scheduler) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.remaining--
	due := s.remaining <= 0
	if due {
		s.remaining = s.period
	}
	remaining := s.remaining
	s.mu.Unlock()

	if due {
		s.launch()
	}
	s.send(CountdownMsg{Remaining: remaining})
}

// launch starts a cycle in its own goroutine.
func (s *Scheduler) launch() {
	seq := s.seq.Inc()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cycle(seq)
	}()
}

// cycle probes first, then pulls the feed against the current list.
func (s *Scheduler) cycle(seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	status := s.prober.Probe(ctx)

	base := s.Current()
	list, err := s.fetcher.Pull(ctx, base)
	if err != nil {
		s.fetcher.LogFailure(err)
	}

	s.apply(ctx, seq, list, status, err)
}

// apply installs a cycle result unless the scheduler stopped or a newer
// cycle already landed. The cache is written only for applied, successful
// pulls.
func (s *Scheduler) apply(
	ctx context.Context,
	seq uint64,
	list []model.Notification,
	status model.ConnectionStatus,
	fetchErr error,
) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Msg("dropping result after stop")
		return
	}
	if seq <= s.applied {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Uint64("applied", s.applied).Msg("dropping stale result")
		return
	}
	s.applied = seq

	newCount := 0
	if fetchErr == nil {
		newCount = feed.NewCount(s.current, list)
		s.current = list
		// Saved under mu so a concurrent Stop cannot be overtaken.
		s.cache.Save(ctx, list)
	}
	current := s.current
	s.mu.Unlock()

	s.send(CycleResultMsg{
		Seq:           seq,
		Notifications: current,
		Status:        status,
		NewCount:      newCount,
		Err:           fetchErr,
	})
}

// send delivers msg unless the scheduler is closed. Countdown messages are
// dropped when the buffer is full; cycle results wait for room.
func (s *Scheduler) send(msg tea.Msg) {
	if _, ok := msg.(CountdownMsg); ok {
		select {
		case s.msgs <- msg:
		default:
		}
		return
	}

	select {
	case s.msgs <- msg:
	case <-s.done:
	}
}

func (s *Scheduler) removeJobLocked() {
	if s.job == nil {
		return
	}
	if err := s.cron.RemoveJob(s.job.ID()); err != nil {
		s.logger.Debug().Err(err).Msg("removing countdown job")
	}
	s.job = nil
}
