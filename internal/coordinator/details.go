package coordinator

import (
	"context"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/fetcher"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/metrics"
)

const (
	// Only results of matches that started this recently are chased on their own page.
	detailWindow = 24 * time.Hour
	// Most recent started matches looked at, and how many of them may be fetched.
	detailScan       = 3
	maxDetailFetches = 2
	detailSource     = "match_page"
)

// detailCandidates picks the matches whose own page is worth fetching: the live
// match, or else up to two recently started matches still missing a result.
func detailCandidates(now time.Time, snap *matches.Snapshot) []matches.MatchRecord {
	if snap == nil {
		return nil
	}
	for _, m := range snap.Matches {
		if m.Status == matches.StatusLive && m.InfoURL != "" {
			return []matches.MatchRecord{m}
		}
	}

	var out []matches.MatchRecord
	scanned := 0
	for i := len(snap.Matches) - 1; i >= 0 && scanned < detailScan; i-- {
		m := snap.Matches[i]
		if m.Kickoff.After(now) {
			continue
		}
		scanned++
		if m.HasScore() || m.InfoURL == "" || now.Sub(m.Kickoff) > detailWindow {
			continue
		}
		out = append(out, m)
		if len(out) == maxDetailFetches {
			break
		}
	}
	return out
}

// enrich fetches the pages of the candidate matches and folds what they show
// into the fresh records. It reports false when nothing changed. Failures only
// cost the extra detail.
func (c *Coordinator) enrich(ctx context.Context, now time.Time, fresh []matches.MatchRecord, snap *matches.Snapshot) ([]matches.MatchRecord, bool) {
	candidates := detailCandidates(now, snap)
	if len(candidates) == 0 {
		return fresh, false
	}

	out := make([]matches.MatchRecord, len(fresh))
	copy(out, fresh)
	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.ID] = i
	}

	updated := false
	for _, cand := range candidates {
		detail, ok := c.fetchDetail(ctx, cand)
		if !ok {
			continue
		}
		updated = true
		if i, listed := index[cand.ID]; listed {
			out[i] = applyDetail(out[i], detail)
			continue
		}
		// Remembered but no longer listed on the schedule page.
		out = append(out, applyDetail(cand.Clone(), detail))
	}
	return out, updated
}

func (c *Coordinator) fetchDetail(ctx context.Context, cand matches.MatchRecord) (matches.MatchRecord, bool) {
	start := time.Now()
	res, err := c.fetcher.Fetch(ctx, cand.InfoURL, fetcher.Validator{})
	if err != nil {
		c.metrics.RecordFetch(detailSource, metrics.OutcomeError, time.Since(start))
		logging.Warn(c.logger, "match page fetch failed",
			"error", err,
			logging.FieldMatchID, cand.ID,
			logging.FieldURL, cand.InfoURL,
		)
		return matches.MatchRecord{}, false
	}
	if !res.Changed {
		c.metrics.RecordFetch(detailSource, metrics.OutcomeUnchanged, time.Since(start))
		return matches.MatchRecord{}, false
	}
	c.metrics.RecordFetch(detailSource, metrics.OutcomeChanged, time.Since(start))

	records, err := c.parser.Parse(res.Body)
	if err != nil {
		logging.Warn(c.logger, "match page parse failed", "error", err, logging.FieldMatchID, cand.ID)
		return matches.MatchRecord{}, false
	}
	for _, r := range records {
		if r.ID == cand.ID {
			return r, true
		}
	}
	logging.Warn(c.logger, "match page did not list the match", logging.FieldMatchID, cand.ID)
	return matches.MatchRecord{}, false
}

// applyDetail takes the score from the match page and fills metadata the
// schedule row lacked. The match page can start a match, never end one.
func applyDetail(rec, detail matches.MatchRecord) matches.MatchRecord {
	if detail.Score != nil {
		s := *detail.Score
		rec.Score = &s
	}
	if detail.Status == matches.StatusLive {
		rec.Status = matches.Advance(rec.Status, matches.StatusLive)
	}
	fillEmpty(&rec.Home, detail.Home)
	fillEmpty(&rec.Away, detail.Away)
	fillEmpty(&rec.HomeLogo, detail.HomeLogo)
	fillEmpty(&rec.AwayLogo, detail.AwayLogo)
	fillEmpty(&rec.TV, detail.TV)
	fillEmpty(&rec.Venue, detail.Venue)
	return rec
}

func fillEmpty(dst *string, val string) {
	if *dst == "" {
		*dst = val
	}
}
