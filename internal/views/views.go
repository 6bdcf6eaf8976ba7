// Package views derives sensor values from a published snapshot.
// Every function is read-only and safe on a nil snapshot.
package views

import (
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// NoneState marks the live sensor when nothing is in progress.
const NoneState = "none"

// LiveState marks the live sensor while a match is in progress.
const LiveState = "live"

// Next returns the earliest upcoming match kicking off at or after now.
func Next(s *matches.Snapshot, now time.Time) (matches.MatchRecord, bool) {
	if s == nil {
		return matches.MatchRecord{}, false
	}
	for _, m := range s.Matches {
		if m.Status == matches.StatusUpcoming && !m.Kickoff.Before(now) {
			return m, true
		}
	}
	return matches.MatchRecord{}, false
}

// Last returns the latest finished match that kicked off before now.
func Last(s *matches.Snapshot, now time.Time) (matches.MatchRecord, bool) {
	return lastFinished(s, now, false)
}

// LastWithResult is Last restricted to matches with a known score.
func LastWithResult(s *matches.Snapshot, now time.Time) (matches.MatchRecord, bool) {
	return lastFinished(s, now, true)
}

func lastFinished(s *matches.Snapshot, now time.Time, needScore bool) (matches.MatchRecord, bool) {
	if s == nil {
		return matches.MatchRecord{}, false
	}
	for i := len(s.Matches) - 1; i >= 0; i-- {
		m := s.Matches[i]
		if m.Status != matches.StatusFinished || !m.Kickoff.Before(now) {
			continue
		}
		if needScore && !m.HasScore() {
			continue
		}
		return m, true
	}
	return matches.MatchRecord{}, false
}

// LiveMatch is the live view: State is LiveState or NoneState.
type LiveMatch struct {
	State string
	Score string
	Match *matches.MatchRecord
}

// Live reports the first match in progress, with its score formatted as "home-away" when known.
func Live(s *matches.Snapshot) LiveMatch {
	if s != nil {
		for _, m := range s.Matches {
			if m.Status != matches.StatusLive {
				continue
			}
			rec := m
			out := LiveMatch{State: LiveState, Match: &rec}
			if m.Score != nil {
				out.Score = m.Score.String()
			}
			return out
		}
	}
	return LiveMatch{State: NoneState}
}

// MatchList is the aggregate view carrying the whole snapshot.
type MatchList struct {
	FetchedAt time.Time             `json:"fetched_at"`
	SourceURL string                `json:"source_url,omitempty"`
	Counts    matches.Counts        `json:"counts"`
	Total     int                   `json:"total"`
	Matches   []matches.MatchRecord `json:"matches"`
}

// List projects the snapshot into a MatchList. The second result is false without a snapshot.
func List(s *matches.Snapshot) (MatchList, bool) {
	if s == nil {
		return MatchList{Matches: []matches.MatchRecord{}}, false
	}
	return MatchList{
		FetchedAt: s.FetchedAt,
		SourceURL: s.SourceURL,
		Counts:    s.Counts,
		Total:     len(s.Matches),
		Matches:   s.Matches,
	}, true
}
