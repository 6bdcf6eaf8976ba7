package coordinator

import (
	"context"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/merger"
	"github.com/preston-bernstein/team-matches-service/internal/metrics"
)

// Refresh runs one cycle now. It returns ErrRefreshInProgress when a cycle is
// already running, otherwise the fetch or parse error of this cycle, if any.
// Errors never replace the published snapshot.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.metrics.RecordRefreshCycle(metrics.OutcomeSkipped, 0)
		logging.Warn(c.logger, "refresh skipped, cycle in flight")
		return ErrRefreshInProgress
	}
	defer c.refreshing.Store(false)
	err := c.cycle(ctx)
	c.reschedule()
	return err
}

func (c *Coordinator) cycle(ctx context.Context) error {
	start := time.Now()
	c.recordAttempt(c.now())
	prev := c.snapshot.Load()

	res, err := c.fetcher.Fetch(ctx, c.cfg.ScheduleURL, c.validator)
	if err != nil {
		c.metrics.RecordFetch(c.cfg.Source, metrics.OutcomeError, time.Since(start))
		logging.Warn(c.logger, "schedule fetch failed",
			"error", err,
			logging.FieldURL, c.cfg.ScheduleURL,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		// A failing source is never polled at the live rate.
		c.finish(start, metrics.OutcomeError, err, c.cfg.ScanInterval)
		return err
	}
	if !res.Changed {
		c.metrics.RecordFetch(c.cfg.Source, metrics.OutcomeUnchanged, time.Since(start))
		c.finish(start, metrics.OutcomeUnchanged, nil, c.intervalFor(prev))
		return nil
	}
	c.metrics.RecordFetch(c.cfg.Source, metrics.OutcomeChanged, time.Since(start))

	records, err := c.parser.Parse(res.Body)
	if err != nil {
		logging.Warn(c.logger, "schedule parse failed", "error", err, logging.FieldURL, c.cfg.ScheduleURL)
		c.finish(start, metrics.OutcomeError, err, c.cfg.ScanInterval)
		return err
	}
	outcome := metrics.OutcomeChanged
	if len(records) == 0 {
		// The page was fetched and parsed, so remembered matches are still published.
		logging.Warn(c.logger, "schedule page listed no matches", logging.FieldURL, c.cfg.ScheduleURL)
		outcome = metrics.OutcomeEmpty
	}

	now := c.now()
	remembered := c.remembered(ctx)
	result := c.merger.Merge(now, records, remembered, prev)
	if c.cfg.MatchDetails {
		if enriched, ok := c.enrich(ctx, now, records, result.Snapshot); ok {
			result = c.merger.Merge(now, enriched, remembered, prev)
		}
	}
	if err := ctx.Err(); err != nil {
		c.finish(start, metrics.OutcomeError, err, c.cfg.ScanInterval)
		return err
	}

	snap := c.commit(ctx, now, result)
	c.snapshot.Store(snap)
	c.validator = res.Validator
	c.notify(snap)

	logging.Info(c.logger, "schedule refreshed",
		logging.FieldCount, len(snap.Matches),
		"live", snap.Counts.Live,
		"upcoming", snap.Counts.Upcoming,
		"finished", snap.Counts.Finished,
	)
	c.finish(start, outcome, nil, c.intervalFor(snap))
	return nil
}

// remembered returns the history to merge with. A store whose startup load
// failed is loaded again first, so nothing is written over history that was never read.
func (c *Coordinator) remembered(ctx context.Context) map[string]matches.HistoryEntry {
	if c.store == nil {
		return nil
	}
	if !c.store.Loaded() {
		if err := c.store.Load(ctx); err != nil {
			logging.Warn(c.logger, "history load failed, merging without it",
				"error", err,
				logging.FieldBackend, c.store.BackendName(),
			)
		} else {
			logging.Info(c.logger, "history loaded",
				logging.FieldBackend, c.store.BackendName(),
				logging.FieldCount, c.store.Len(),
			)
		}
	}
	return c.store.Entries()
}

// commit writes the merge result back to history and flushes it. Persist
// failures are logged and retried on the next cycle.
func (c *Coordinator) commit(ctx context.Context, now time.Time, result merger.Result) *matches.Snapshot {
	if c.store == nil {
		return result.Snapshot
	}

	for _, entry := range result.Upserts {
		c.store.Upsert(entry)
	}
	if removed := c.store.Prune(now, c.cfg.StoreDays); removed > 0 {
		logging.Info(c.logger, "history pruned", logging.FieldCount, removed)
	}
	if c.store.Dirty() {
		err := c.store.Persist(ctx)
		c.metrics.RecordHistoryPersist(c.store.BackendName(), c.store.Len(), err)
		if err != nil {
			logging.Warn(c.logger, "history persist failed",
				"error", err,
				logging.FieldBackend, c.store.BackendName(),
			)
		}
	}
	return result.Snapshot
}

func (c *Coordinator) finish(start time.Time, outcome string, err error, interval time.Duration) {
	c.statusMu.Lock()
	c.status.LastOutcome = outcome
	c.status.Interval = interval
	if err != nil {
		c.status.ConsecutiveFailures++
		c.status.LastError = err.Error()
	} else {
		c.status.ConsecutiveFailures = 0
		c.status.LastError = ""
		c.status.LastSuccess = c.now()
	}
	c.statusMu.Unlock()

	c.metrics.RecordRefreshCycle(outcome, time.Since(start))
	logging.Info(c.logger, "refresh cycle finished",
		logging.FieldOutcome, outcome,
		logging.FieldInterval, interval.String(),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}
