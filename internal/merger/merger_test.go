package merger

import (
	"reflect"
	"testing"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

var now = time.Date(2026, 2, 3, 18, 0, 0, 0, time.UTC)

func finishedEntry(id string, lastSeen time.Time) matches.HistoryEntry {
	return matches.HistoryEntry{
		Record: matches.MatchRecord{
			ID:      id,
			Kickoff: lastSeen.Add(-3 * time.Hour),
			Status:  matches.StatusFinished,
			Score:   &matches.Score{Home: 90, Away: 80},
		},
		LastSeenAt: lastSeen,
	}
}

func TestMergeSingleUpcoming(t *testing.T) {
	m := New(30, "https://zalgiris.lt/rungtynes")
	fresh := []matches.MatchRecord{{ID: "A", Status: matches.StatusUpcoming, Kickoff: now.Add(time.Hour)}}

	res := m.Merge(now, fresh, map[string]matches.HistoryEntry{}, nil)

	if len(res.Snapshot.Matches) != 1 || res.Snapshot.Matches[0].ID != "A" {
		t.Fatalf("unexpected matches %+v", res.Snapshot.Matches)
	}
	if res.Snapshot.Counts != (matches.Counts{Upcoming: 1}) {
		t.Fatalf("unexpected counts %+v", res.Snapshot.Counts)
	}
	if len(res.Upserts) != 0 || len(res.History) != 0 {
		t.Fatalf("upcoming records must not enter history")
	}
	if !res.Snapshot.FetchedAt.Equal(now) || res.Snapshot.SourceURL == "" {
		t.Fatalf("unexpected snapshot metadata %+v", res.Snapshot)
	}
}

func TestMergeEmptyPageKeepsHistory(t *testing.T) {
	m := New(30, "")
	history := map[string]matches.HistoryEntry{"B": finishedEntry("B", now.Add(-24*time.Hour))}

	res := m.Merge(now, []matches.MatchRecord{}, history, nil)

	if res.Snapshot.Counts != (matches.Counts{Finished: 1}) {
		t.Fatalf("unexpected counts %+v", res.Snapshot.Counts)
	}
	if rec, ok := res.Snapshot.Find("B"); !ok || rec.Status != matches.StatusFinished {
		t.Fatalf("expected B backfilled as finished, got %+v", rec)
	}
	if len(res.Upserts) != 0 {
		t.Fatalf("backfilled entries must not refresh last_seen_at")
	}
}

func TestMergeBackfillsMissingFinished(t *testing.T) {
	m := New(7, "")
	history := map[string]matches.HistoryEntry{"M": finishedEntry("M", now)}
	fresh := []matches.MatchRecord{{ID: "N", Status: matches.StatusUpcoming, Kickoff: now.Add(48 * time.Hour)}}

	res := m.Merge(now, fresh, history, nil)

	rec, ok := res.Snapshot.Find("M")
	if !ok || rec.Status != matches.StatusFinished || rec.Score == nil {
		t.Fatalf("expected M backfilled with score, got %+v", rec)
	}
	if res.Snapshot.Matches[0].ID != "M" {
		t.Fatalf("expected chronological order, got %+v", res.Snapshot.Matches)
	}
}

func TestMergeExcludesExpiredHistory(t *testing.T) {
	m := New(7, "")
	history := map[string]matches.HistoryEntry{"M": finishedEntry("M", now.Add(-8*24*time.Hour))}

	res := m.Merge(now, nil, history, nil)

	if _, ok := res.Snapshot.Find("M"); ok {
		t.Fatalf("expired entry must not be backfilled")
	}
	if _, ok := res.History["M"]; ok {
		t.Fatalf("expired entry must be dropped from history")
	}
}

func TestMergeFreshFinishedUpsertsHistory(t *testing.T) {
	m := New(7, "")
	history := map[string]matches.HistoryEntry{"F": finishedEntry("F", now.Add(-48*time.Hour))}
	fresh := []matches.MatchRecord{{
		ID:      "F",
		Status:  matches.StatusFinished,
		Kickoff: now.Add(-50 * time.Hour),
		Score:   &matches.Score{Home: 91, Away: 84},
	}}

	res := m.Merge(now, fresh, history, nil)

	if len(res.Upserts) != 1 || !res.Upserts[0].LastSeenAt.Equal(now) {
		t.Fatalf("expected refreshed last_seen_at, got %+v", res.Upserts)
	}
	if got := res.History["F"].Record.Score; got == nil || got.String() != "91-84" {
		t.Fatalf("expected fresh score to win, got %+v", got)
	}
	if len(res.Snapshot.Matches) != 1 {
		t.Fatalf("expected de-duplicated snapshot, got %+v", res.Snapshot.Matches)
	}
}

func TestMergeNeverRegressesStatus(t *testing.T) {
	m := New(30, "")
	prev := matches.NewSnapshot(now.Add(-time.Minute), "", []matches.MatchRecord{
		{ID: "L", Status: matches.StatusLive, Kickoff: now.Add(-time.Hour)},
	})
	history := map[string]matches.HistoryEntry{"F": finishedEntry("F", now)}
	fresh := []matches.MatchRecord{
		{ID: "L", Status: matches.StatusUpcoming, Kickoff: now.Add(-time.Hour)},
		{ID: "F", Status: matches.StatusUpcoming, Kickoff: now.Add(-3 * time.Hour)},
	}

	res := m.Merge(now, fresh, history, prev)

	if rec, _ := res.Snapshot.Find("L"); rec.Status != matches.StatusLive {
		t.Fatalf("live must not regress to upcoming, got %s", rec.Status)
	}
	if rec, _ := res.Snapshot.Find("F"); rec.Status != matches.StatusFinished {
		t.Fatalf("finished must not regress to upcoming, got %s", rec.Status)
	}
	for _, rec := range res.Snapshot.Matches {
		if rec.Status == matches.StatusUpcoming {
			t.Fatalf("unexpected regressed record %+v", rec)
		}
	}
}

func TestMergeStartedMatchCanStillGoLive(t *testing.T) {
	m := New(30, "")
	kickoff := now.Add(-time.Minute)
	started := []matches.MatchRecord{{ID: "g", Status: matches.StatusUpcoming, Kickoff: kickoff}}

	first := m.Merge(now, started, nil, nil)
	if first.Snapshot.HasLive() {
		t.Fatalf("expected no live match before the badge appears")
	}

	badge := []matches.MatchRecord{{ID: "g", Status: matches.StatusLive, Kickoff: kickoff, Score: &matches.Score{Home: 10, Away: 8}}}
	second := m.Merge(now.Add(time.Minute), badge, first.History, first.Snapshot)
	rec, ok := second.Snapshot.Find("g")
	if !ok || rec.Status != matches.StatusLive || !second.Snapshot.HasLive() {
		t.Fatalf("expected g live after the badge appeared, got %+v", rec)
	}
}

func TestMergeCarriesOverKnownScoreAndMetadata(t *testing.T) {
	m := New(30, "")
	prev := matches.NewSnapshot(now.Add(-time.Minute), "", []matches.MatchRecord{{
		ID:      "F",
		Status:  matches.StatusLive,
		Kickoff: now.Add(-2 * time.Hour),
		Score:   &matches.Score{Home: 70, Away: 68},
		Venue:   "Žalgirio arena",
		TV:      "TV3 Sport",
	}})
	fresh := []matches.MatchRecord{{ID: "F", Status: matches.StatusFinished, Kickoff: now.Add(-2 * time.Hour)}}

	res := m.Merge(now, fresh, nil, prev)

	rec, _ := res.Snapshot.Find("F")
	if rec.Score == nil || rec.Score.String() != "70-68" {
		t.Fatalf("expected carried score, got %+v", rec.Score)
	}
	if rec.Venue != "Žalgirio arena" || rec.TV != "TV3 Sport" {
		t.Fatalf("expected carried metadata, got %+v", rec)
	}
	rec.Score.Home = 0
	if prev.Matches[0].Score.Home != 70 {
		t.Fatalf("merge must not share pointers with the previous snapshot")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	m := New(7, "")
	history := map[string]matches.HistoryEntry{
		"H": finishedEntry("H", now.Add(-24*time.Hour)),
		"X": finishedEntry("X", now.Add(-10*24*time.Hour)),
	}
	fresh := []matches.MatchRecord{
		{ID: "A", Status: matches.StatusUpcoming, Kickoff: now.Add(24 * time.Hour)},
		{ID: "B", Status: matches.StatusLive, Kickoff: now.Add(-time.Hour), Score: &matches.Score{Home: 10, Away: 12}},
		{ID: "C", Status: matches.StatusFinished, Kickoff: now.Add(-72 * time.Hour)},
	}

	first := m.Merge(now, fresh, history, nil)
	second := m.Merge(now, fresh, history, first.Snapshot)

	if !reflect.DeepEqual(first.Snapshot, second.Snapshot) {
		t.Fatalf("expected identical snapshots\nfirst:  %+v\nsecond: %+v", first.Snapshot, second.Snapshot)
	}
}

func TestMergeAssignsFallbackIdentity(t *testing.T) {
	m := New(7, "")
	kickoff := now.Add(24 * time.Hour)
	fresh := []matches.MatchRecord{
		{Home: "Žalgiris", Away: "Rytas", Kickoff: kickoff, Status: matches.StatusUpcoming},
		{Home: "Žalgiris", Away: "Rytas", Kickoff: kickoff, Status: matches.StatusUpcoming},
		{ID: "bad", Kickoff: kickoff, Status: "postponed"},
	}

	res := m.Merge(now, fresh, nil, nil)

	if len(res.Snapshot.Matches) != 2 {
		t.Fatalf("expected duplicate fallback identities collapsed, got %+v", res.Snapshot.Matches)
	}
	want := matches.FallbackID("Žalgiris", "Rytas", kickoff)
	if _, ok := res.Snapshot.Find(want); !ok {
		t.Fatalf("expected record with fallback id %s", want)
	}
	if rec, _ := res.Snapshot.Find("bad"); rec.Status != matches.StatusUpcoming {
		t.Fatalf("expected unknown status normalised to upcoming, got %s", rec.Status)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	m := New(7, "")
	history := map[string]matches.HistoryEntry{"H": finishedEntry("H", now)}
	fresh := []matches.MatchRecord{{ID: "A", Status: matches.StatusFinished, Kickoff: now.Add(-time.Hour)}}

	_ = m.Merge(now, fresh, history, nil)

	if len(history) != 1 {
		t.Fatalf("history input must not be modified")
	}
	if fresh[0].Score != nil {
		t.Fatalf("fresh input must not be modified")
	}
}
