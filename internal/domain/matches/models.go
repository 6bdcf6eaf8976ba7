package matches

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status mirrors the lifecycle of a match as observed on the schedule page.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// Rank orders statuses so transitions can only move forward.
func (s Status) Rank() int {
	switch s {
	case StatusUpcoming:
		return 1
	case StatusLive:
		return 2
	case StatusFinished:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.Rank() > 0
}

// Advance returns the later of two statuses for the same match.
func Advance(prev, next Status) Status {
	if prev.Rank() > next.Rank() {
		return prev
	}
	return next
}

// Score captures home and away points once known.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// String formats the score as "home-away".
func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// MatchRecord is the canonical match shape produced by parsers and published in snapshots.
type MatchRecord struct {
	ID          string    `json:"id"`
	Kickoff     time.Time `json:"kickoff"`
	Status      Status    `json:"status"`
	Score       *Score    `json:"score,omitempty"`
	Home        string    `json:"home,omitempty"`
	Away        string    `json:"away,omitempty"`
	Competition string    `json:"competition,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	TV          string    `json:"tv,omitempty"`
	HomeLogo    string    `json:"homeLogo,omitempty"`
	AwayLogo    string    `json:"awayLogo,omitempty"`
	InfoURL     string    `json:"infoUrl,omitempty"`
	TicketsURL  string    `json:"ticketsUrl,omitempty"`
}

// HasScore reports whether both sides of the score are known.
func (m MatchRecord) HasScore() bool {
	return m.Score != nil
}

// Opponent returns the side that is not team, falling back to the away side.
func (m MatchRecord) Opponent(team string) string {
	if team != "" && strings.EqualFold(m.Away, team) {
		return m.Home
	}
	return m.Away
}

// Clone returns a copy that shares no pointers with m.
func (m MatchRecord) Clone() MatchRecord {
	if m.Score != nil {
		s := *m.Score
		m.Score = &s
	}
	return m
}

// FallbackID derives a deterministic identity when the source exposes no id.
func FallbackID(home, away string, kickoff time.Time) string {
	return strings.ToLower(strings.TrimSpace(home)) + "|" +
		strings.ToLower(strings.TrimSpace(away)) + "|" +
		kickoff.Format("2006-01-02")
}

// Counts tallies records per status.
type Counts struct {
	Live     int `json:"live"`
	Upcoming int `json:"upcoming"`
	Finished int `json:"finished"`
}

// Snapshot is the immutable set of matches published after a refresh.
type Snapshot struct {
	FetchedAt time.Time     `json:"fetched_at"`
	SourceURL string        `json:"source_url,omitempty"`
	Counts    Counts        `json:"counts"`
	Matches   []MatchRecord `json:"matches"`
}

// NewSnapshot sorts records chronologically and computes counts.
// The caller hands over ownership of records.
func NewSnapshot(fetchedAt time.Time, sourceURL string, records []MatchRecord) *Snapshot {
	if records == nil {
		records = []MatchRecord{}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Kickoff.Equal(records[j].Kickoff) {
			return records[i].ID < records[j].ID
		}
		return records[i].Kickoff.Before(records[j].Kickoff)
	})
	return &Snapshot{
		FetchedAt: fetchedAt,
		SourceURL: sourceURL,
		Counts:    CountStatuses(records),
		Matches:   records,
	}
}

// CountStatuses tallies records per status.
func CountStatuses(records []MatchRecord) Counts {
	var c Counts
	for _, r := range records {
		switch r.Status {
		case StatusLive:
			c.Live++
		case StatusUpcoming:
			c.Upcoming++
		case StatusFinished:
			c.Finished++
		}
	}
	return c
}

// HasLive reports whether any record is currently live.
func (s *Snapshot) HasLive() bool {
	return s != nil && s.Counts.Live > 0
}

// Find returns the record with the given id.
func (s *Snapshot) Find(id string) (MatchRecord, bool) {
	if s == nil {
		return MatchRecord{}, false
	}
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return MatchRecord{}, false
}

// HistoryEntry is the persisted projection of a finished match.
type HistoryEntry struct {
	Record     MatchRecord `json:"record"`
	LastSeenAt time.Time   `json:"last_seen_at"`
}

// Expired reports whether the entry was last seen longer than retention ago.
func (e HistoryEntry) Expired(now time.Time, retention time.Duration) bool {
	if retention <= 0 {
		return false
	}
	return now.Sub(e.LastSeenAt) > retention
}

// RetentionFromDays converts a store_days setting to a duration.
func RetentionFromDays(days int) time.Duration {
	if days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}
