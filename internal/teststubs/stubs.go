package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/fetcher"
)

// StubFetcher is a test double for fetcher.Fetcher.
// URLs listed in ByURL or URLErrs get their own answer; every other call takes
// the next entry of Results/Errs, and the last one repeats once exhausted.
type StubFetcher struct {
	mu         sync.Mutex
	Results    []fetcher.Result
	Errs       []error
	ByURL      map[string]fetcher.Result
	URLErrs    map[string]error
	Validators []fetcher.Validator
	URLs       []string
	Calls      atomic.Int32
	Notify     chan struct{}
	Block      chan struct{}

	seq atomic.Int32
}

// Fetch records the url and validator it was given and returns the configured result.
func (s *StubFetcher) Fetch(ctx context.Context, url string, validator fetcher.Validator) (fetcher.Result, error) {
	s.Calls.Add(1)

	s.mu.Lock()
	s.Validators = append(s.Validators, validator)
	s.URLs = append(s.URLs, url)
	s.mu.Unlock()

	if err, ok := s.URLErrs[url]; ok {
		return fetcher.Result{}, err
	}
	if res, ok := s.ByURL[url]; ok {
		return res, nil
	}
	n := int(s.seq.Add(1)) - 1

	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return fetcher.Result{}, ctx.Err()
		}
	}

	var res fetcher.Result
	if len(s.Results) > 0 {
		res = s.Results[min(n, len(s.Results)-1)]
	}
	var err error
	if len(s.Errs) > 0 {
		err = s.Errs[min(n, len(s.Errs)-1)]
	}
	return res, err
}

// SeenURLs returns a copy of the urls passed to Fetch.
func (s *StubFetcher) SeenURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.URLs...)
}

// SeenValidators returns a copy of the validators passed to Fetch.
func (s *StubFetcher) SeenValidators() []fetcher.Validator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fetcher.Validator(nil), s.Validators...)
}

// StubParser is a test double for parser.Parser.
// Bodies listed in ByBody get their own records; any other body gets Records.
type StubParser struct {
	Records []matches.MatchRecord
	ByBody  map[string][]matches.MatchRecord
	Err     error
	Calls   atomic.Int32
}

// Parse returns a copy of the configured records.
func (p *StubParser) Parse(body []byte) ([]matches.MatchRecord, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	records := p.Records
	if recs, ok := p.ByBody[string(body)]; ok {
		records = recs
	}
	out := make([]matches.MatchRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out, nil
}

// MemoryBackend is an in-memory history backend with injectable failures.
type MemoryBackend struct {
	mu      sync.Mutex
	Data    map[string]matches.HistoryEntry
	LoadErr error
	SaveErr error
	Saves   int
	Closed  bool
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Load(ctx context.Context) (map[string]matches.HistoryEntry, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.LoadErr != nil {
		return nil, b.LoadErr
	}
	out := make(map[string]matches.HistoryEntry, len(b.Data))
	for k, v := range b.Data {
		out[k] = v
	}
	return out, nil
}

func (b *MemoryBackend) Save(ctx context.Context, entries map[string]matches.HistoryEntry) error {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Saves++
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.Data = make(map[string]matches.HistoryEntry, len(entries))
	for k, v := range entries {
		b.Data[k] = v
	}
	return nil
}

func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed = true
	return nil
}

// SetLoadErr swaps the load error under the lock.
func (b *MemoryBackend) SetLoadErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LoadErr = err
}

// SetSaveErr swaps the save error under the lock.
func (b *MemoryBackend) SetSaveErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.SaveErr = err
}

// SaveCount returns how many times Save was called.
func (b *MemoryBackend) SaveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Saves
}

// Snapshot returns a copy of the persisted data.
func (b *MemoryBackend) Snapshot() map[string]matches.HistoryEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]matches.HistoryEntry, len(b.Data))
	for k, v := range b.Data {
		out[k] = v
	}
	return out
}
