// Package merger combines a freshly parsed schedule with remembered history.
package merger

import (
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// Merger holds the policy for combining fresh records with history. It performs no I/O.
type Merger struct {
	Retention time.Duration
	SourceURL string
}

// New constructs a merger keeping history for retentionDays.
func New(retentionDays int, sourceURL string) Merger {
	return Merger{Retention: matches.RetentionFromDays(retentionDays), SourceURL: sourceURL}
}

// Result is the outcome of a merge.
type Result struct {
	Snapshot *matches.Snapshot
	// History is the unexpired history after applying Upserts.
	History map[string]matches.HistoryEntry
	// Upserts are the entries the store must write back.
	Upserts []matches.HistoryEntry
}

// Merge builds the next snapshot from fresh records, unexpired history and the previous snapshot.
//
// Fresh records win over remembered ones, except that a status never moves
// backwards. Finished records are written to history with last_seen_at = now.
// History entries missing from the page are carried as finished until they expire.
func (m Merger) Merge(now time.Time, fresh []matches.MatchRecord, history map[string]matches.HistoryEntry, prev *matches.Snapshot) Result {
	kept := m.unexpired(now, history)
	previous := indexSnapshot(prev)

	records := make([]matches.MatchRecord, 0, len(fresh)+len(kept))
	seen := make(map[string]struct{}, len(fresh))
	var upserts []matches.HistoryEntry

	for _, f := range fresh {
		rec := f.Clone()
		if rec.ID == "" {
			rec.ID = matches.FallbackID(rec.Home, rec.Away, rec.Kickoff)
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}

		h, inHistory := kept[rec.ID]
		p, inPrev := previous[rec.ID]
		if inPrev {
			rec = carryOver(rec, p)
		}
		if inHistory {
			rec = carryOver(rec, h.Record)
		}
		if !rec.Status.Valid() {
			rec.Status = matches.StatusUpcoming
		}

		if rec.Status == matches.StatusFinished {
			entry := matches.HistoryEntry{Record: rec.Clone(), LastSeenAt: now}
			upserts = append(upserts, entry)
			kept[rec.ID] = entry
		}
		records = append(records, rec)
	}

	for id, h := range kept {
		if _, ok := seen[id]; ok {
			continue
		}
		rec := h.Record.Clone()
		rec.ID = id
		rec.Status = matches.StatusFinished
		records = append(records, rec)
	}

	return Result{
		Snapshot: matches.NewSnapshot(now, m.SourceURL, records),
		History:  kept,
		Upserts:  upserts,
	}
}

func (m Merger) unexpired(now time.Time, history map[string]matches.HistoryEntry) map[string]matches.HistoryEntry {
	out := make(map[string]matches.HistoryEntry, len(history))
	for id, h := range history {
		if id == "" || h.Expired(now, m.Retention) {
			continue
		}
		h.Record = h.Record.Clone()
		out[id] = h
	}
	return out
}

func indexSnapshot(s *matches.Snapshot) map[string]matches.MatchRecord {
	if s == nil {
		return nil
	}
	out := make(map[string]matches.MatchRecord, len(s.Matches))
	for _, r := range s.Matches {
		out[r.ID] = r
	}
	return out
}

// carryOver fills what the fresh record lacks from a known version of the same match
// and keeps the later of the two statuses.
func carryOver(fresh, known matches.MatchRecord) matches.MatchRecord {
	fresh.Status = matches.Advance(known.Status, fresh.Status)
	if fresh.Score == nil && known.Score != nil {
		s := *known.Score
		fresh.Score = &s
	}
	fillString(&fresh.Home, known.Home)
	fillString(&fresh.Away, known.Away)
	fillString(&fresh.Competition, known.Competition)
	fillString(&fresh.Venue, known.Venue)
	fillString(&fresh.TV, known.TV)
	fillString(&fresh.HomeLogo, known.HomeLogo)
	fillString(&fresh.AwayLogo, known.AwayLogo)
	fillString(&fresh.InfoURL, known.InfoURL)
	fillString(&fresh.TicketsURL, known.TicketsURL)
	return fresh
}

func fillString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
