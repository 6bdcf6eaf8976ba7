package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// Sensor identifiers.
const (
	SensorNext       = "next"
	SensorLast       = "last"
	SensorLastResult = "last_result"
	SensorLive       = "live"
	SensorSchedule   = "schedule"
)

// UnknownState is reported when a view has no value.
const UnknownState = "unknown"

// SensorIDs lists every sensor in publication order.
var SensorIDs = []string{SensorNext, SensorLast, SensorLastResult, SensorLive, SensorSchedule}

// Sensor is one published value plus structured attributes.
type Sensor struct {
	ID         string         `json:"id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Sensors builds every sensor from the snapshot. team is used to name the opponent and result.
func Sensors(s *matches.Snapshot, now time.Time, team string) []Sensor {
	out := make([]Sensor, 0, len(SensorIDs))
	for _, id := range SensorIDs {
		sensor, _ := SensorByID(s, now, team, id)
		out = append(out, sensor)
	}
	return out
}

// Document is the full sensor set as served to consumers.
type Document struct {
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Sensors   []Sensor   `json:"sensors"`
}

// NewDocument builds the sensor set for s. FetchedAt is nil before the first snapshot.
func NewDocument(s *matches.Snapshot, now time.Time, team string) Document {
	doc := Document{Sensors: Sensors(s, now, team)}
	if s != nil {
		at := s.FetchedAt
		doc.FetchedAt = &at
	}
	return doc
}

// SensorByID builds a single sensor; ok is false for unknown ids.
func SensorByID(s *matches.Snapshot, now time.Time, team, id string) (Sensor, bool) {
	switch id {
	case SensorNext:
		m, ok := Next(s, now)
		return timestampSensor(id, m, ok, team), true
	case SensorLast:
		m, ok := Last(s, now)
		return timestampSensor(id, m, ok, team), true
	case SensorLastResult:
		m, ok := LastWithResult(s, now)
		if !ok {
			return Sensor{ID: id, State: UnknownState, Attributes: map[string]any{}}, true
		}
		attrs := matchAttributes(m, team)
		if r := result(m, team); r != "" {
			attrs["result"] = r
		}
		return Sensor{ID: id, State: m.Score.String(), Attributes: attrs}, true
	case SensorLive:
		live := Live(s)
		attrs := map[string]any{}
		if live.Match != nil {
			attrs = matchAttributes(*live.Match, team)
		}
		return Sensor{ID: id, State: live.State, Attributes: attrs}, true
	case SensorSchedule:
		return scheduleSensor(s), true
	default:
		return Sensor{}, false
	}
}

func timestampSensor(id string, m matches.MatchRecord, ok bool, team string) Sensor {
	if !ok {
		return Sensor{ID: id, State: UnknownState, Attributes: map[string]any{}}
	}
	return Sensor{ID: id, State: m.Kickoff.Format(time.RFC3339), Attributes: matchAttributes(m, team)}
}

func scheduleSensor(s *matches.Snapshot) Sensor {
	list, ok := List(s)
	if !ok {
		return Sensor{ID: SensorSchedule, State: UnknownState, Attributes: map[string]any{}}
	}
	return Sensor{
		ID:    SensorSchedule,
		State: strconv.Itoa(list.Total),
		Attributes: map[string]any{
			"fetched_at": list.FetchedAt.Format(time.RFC3339),
			"source_url": list.SourceURL,
			"counts":     list.Counts,
			"matches":    list.Matches,
		},
	}
}

func matchAttributes(m matches.MatchRecord, team string) map[string]any {
	attrs := map[string]any{
		"id":      m.ID,
		"kickoff": m.Kickoff.Format(time.RFC3339),
		"status":  string(m.Status),
	}
	set := func(key, value string) {
		if value != "" {
			attrs[key] = value
		}
	}
	set("home", m.Home)
	set("away", m.Away)
	set("opponent", m.Opponent(team))
	set("competition", m.Competition)
	set("venue", m.Venue)
	set("tv", m.TV)
	set("home_logo", m.HomeLogo)
	set("away_logo", m.AwayLogo)
	set("info_url", m.InfoURL)
	set("tickets_url", m.TicketsURL)
	if m.Score != nil {
		attrs["score"] = m.Score.String()
	}
	return attrs
}

// result is "win", "loss" or "draw" from team's side; empty when team is not playing or the score is unknown.
func result(m matches.MatchRecord, team string) string {
	if m.Score == nil || team == "" {
		return ""
	}
	var ours, theirs int
	switch {
	case strings.EqualFold(m.Home, team):
		ours, theirs = m.Score.Home, m.Score.Away
	case strings.EqualFold(m.Away, team):
		ours, theirs = m.Score.Away, m.Score.Home
	default:
		return ""
	}
	switch {
	case ours > theirs:
		return "win"
	case ours < theirs:
		return "loss"
	default:
		return "draw"
	}
}
