// Package coordinator owns the refresh loop: it fetches the schedule page,
// merges it with remembered history and publishes immutable snapshots.
package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/fetcher"
	"github.com/preston-bernstein/team-matches-service/internal/history"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/merger"
	"github.com/preston-bernstein/team-matches-service/internal/metrics"
	"github.com/preston-bernstein/team-matches-service/internal/parser"
)

const (
	defaultScanInterval     = 600 * time.Second
	defaultLiveScanInterval = 20 * time.Second
	defaultSource           = "schedule"
)

// ErrRefreshInProgress is returned when a refresh is requested while a cycle is in flight.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Config holds the knobs of the refresh loop.
type Config struct {
	ScheduleURL      string
	Source           string
	ScanInterval     time.Duration
	LiveScanInterval time.Duration
	StoreDays        int
	// MatchDetails enables fetching a match's own page for live scores and missing results.
	MatchDetails bool
}

// Coordinator drives Fetcher, Parser and Merger on an adaptive interval.
// Only one cycle runs at a time; ticks that arrive mid-cycle are skipped.
type Coordinator struct {
	cfg     Config
	fetcher fetcher.Fetcher
	parser  parser.Parser
	store   *history.Store
	merger  merger.Merger
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	snapshot   atomic.Pointer[matches.Snapshot]
	refreshing atomic.Bool
	// validator is only touched by the goroutine holding refreshing.
	validator fetcher.Validator

	done     chan struct{}
	exited   chan struct{}
	wake     chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status

	subsMu  sync.RWMutex
	subs    map[int]func(*matches.Snapshot)
	nextSub int
}

// New constructs a Coordinator. store may be nil, in which case nothing is remembered between pages.
func New(cfg Config, f fetcher.Fetcher, p parser.Parser, store *history.Store, logger *slog.Logger, recorder *metrics.Recorder) *Coordinator {
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = defaultScanInterval
	}
	if cfg.LiveScanInterval <= 0 {
		cfg.LiveScanInterval = defaultLiveScanInterval
	}
	if cfg.Source == "" {
		cfg.Source = defaultSource
	}
	c := &Coordinator{
		cfg:     cfg,
		fetcher: f,
		parser:  p,
		store:   store,
		merger:  merger.New(cfg.StoreDays, cfg.ScheduleURL),
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
		wake:    make(chan struct{}, 1),
		subs:    make(map[int]func(*matches.Snapshot)),
	}
	c.status.Interval = cfg.ScanInterval
	return c
}

// Start runs an initial cycle and keeps refreshing until ctx is cancelled or Stop is called.
func (c *Coordinator) Start(ctx context.Context) {
	c.startMu.Lock()
	if c.started {
		c.startMu.Unlock()
		return
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.startMu.Unlock()

	go c.run(ctx)
}

// Stop halts the loop, abandons an in-flight fetch and waits for the loop to exit.
func (c *Coordinator) Stop(ctx context.Context) error {
	c.startMu.Lock()
	started := c.started
	cancel := c.cancel
	c.startMu.Unlock()

	c.stopOnce.Do(func() {
		close(c.done)
		if cancel != nil {
			cancel()
		}
	})
	if !started {
		return nil
	}

	select {
	case <-c.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) run(ctx context.Context) {
	defer close(c.exited)
	logging.Info(c.logger, "coordinator started",
		logging.FieldURL, c.cfg.ScheduleURL,
		logging.FieldInterval, c.cfg.ScanInterval.String(),
	)

	c.tick(ctx)
	timer := time.NewTimer(c.NextInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info(c.logger, "coordinator stopped")
			return
		case <-c.done:
			logging.Info(c.logger, "coordinator stopped")
			return
		case <-timer.C:
			c.tick(ctx)
			timer.Reset(c.NextInterval())
		case <-c.wake:
			// An out-of-band refresh may have changed the interval.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.NextInterval())
		}
	}
}

// reschedule asks the loop to re-arm its timer with the current interval.
func (c *Coordinator) reschedule() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// tick runs a scheduled cycle. Its own wake-up is dropped since the caller re-arms the timer.
func (c *Coordinator) tick(ctx context.Context) {
	// Cycle failures are logged inside Refresh.
	_ = c.Refresh(ctx)
	select {
	case <-c.wake:
	default:
	}
}

// Current returns the latest published snapshot, or nil before the first successful cycle.
func (c *Coordinator) Current() *matches.Snapshot {
	return c.snapshot.Load()
}

// NextInterval is the delay before the next scheduled cycle.
func (c *Coordinator) NextInterval() time.Duration {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status.Interval
}

// Refreshing reports whether a cycle is in flight.
func (c *Coordinator) Refreshing() bool {
	return c.refreshing.Load()
}

func (c *Coordinator) intervalFor(snap *matches.Snapshot) time.Duration {
	if snap.HasLive() {
		return c.cfg.LiveScanInterval
	}
	return c.cfg.ScanInterval
}
