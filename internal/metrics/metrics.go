package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	unchanged       int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about fetches and refresh cycles
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu            sync.Mutex
	stats         map[string]*sourceStats
	cycles        map[string]int
	persistErrors int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*sourceStats),
		cycles: make(map[string]int),
		otel:   otel,
	}
}

// RecordFetch counts a fetch against source with its outcome and latency.
func (r *Recorder) RecordFetch(source, outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(source)
	stats.calls++
	stats.lastCallLatency = duration
	switch outcome {
	case OutcomeError:
		stats.errors++
	case OutcomeUnchanged:
		stats.unchanged++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(source, outcome, duration)
	}
}

// RecordRefreshCycle tracks coordinator cycles by outcome.
func (r *Recorder) RecordRefreshCycle(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCycle(outcome, duration)
	}
}

// RecordHistoryPersist tracks history flushes and their failures.
func (r *Recorder) RecordHistoryPersist(backend string, entries int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.mu.Lock()
		r.persistErrors++
		r.mu.Unlock()
	}
	if r.otel != nil {
		r.otel.recordPersist(backend, entries, err)
	}
}

// RecordBroadcast tracks snapshot pushes to stream subscribers.
func (r *Recorder) RecordBroadcast(clients int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordBroadcast(clients)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the fetch stats recorded for a source.
type Snapshot struct {
	Calls           int
	Errors          int
	Unchanged       int
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the source.
func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Unchanged:       stats.unchanged,
		LastCallLatency: stats.lastCallLatency,
	}
}

// Cycles returns how many refresh cycles ended with outcome.
func (r *Recorder) Cycles(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles[outcome]
}

// PersistErrors returns the number of failed history flushes.
func (r *Recorder) PersistErrors() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistErrors
}

func (r *Recorder) ensureStatsLocked(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
