package testutil

import (
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// SampleMatch returns a minimal match record with the provided id and status.
func SampleMatch(id string, status matches.Status, kickoff time.Time) matches.MatchRecord {
	m := matches.MatchRecord{
		ID:          id,
		Kickoff:     kickoff,
		Status:      status,
		Home:        "Žalgiris",
		Away:        "Rytas",
		Competition: "LKL",
	}
	if status != matches.StatusUpcoming {
		m.Score = &matches.Score{Home: 81, Away: 77}
	}
	return m
}

// SampleSnapshot builds a snapshot around now with one finished, one live and one upcoming match.
func SampleSnapshot(now time.Time) *matches.Snapshot {
	return matches.NewSnapshot(now, "https://zalgiris.lt/rungtynes", []matches.MatchRecord{
		SampleMatch("finished-1", matches.StatusFinished, now.Add(-72*time.Hour)),
		SampleMatch("live-1", matches.StatusLive, now.Add(-30*time.Minute)),
		SampleMatch("upcoming-1", matches.StatusUpcoming, now.Add(48*time.Hour)),
	})
}
