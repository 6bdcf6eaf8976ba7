package zalgiris

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/timeutil"
)

func (p *Parser) kickoff(text string, now time.Time) (time.Time, bool) {
	m := kickoffRE.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[3])
	minute, _ := strconv.Atoi(m[4])
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	return timeutil.InferKickoff(now, time.Month(month), day, hour, minute, p.loc), true
}

// scoreFrom takes the first two purely numeric values as home and away points.
func scoreFrom(values []string) *matches.Score {
	nums := make([]int, 0, 2)
	for _, v := range values {
		v = strings.TrimSpace(normalizeSpace(v))
		if len(v) == 0 || len(v) > 3 || !isDigits(v) {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		nums = append(nums, n)
		if len(nums) == 2 {
			return &matches.Score{Home: nums[0], Away: nums[1]}
		}
	}
	return nil
}

func knownLeague(text string) string {
	for _, league := range knownLeagues {
		if strings.Contains(text, league) {
			return league
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func normalizeSpace(s string) string {
	return strings.ReplaceAll(s, "\u00a0", " ")
}

func withinLen(s string, max int) bool {
	n := len([]rune(s))
	return n > 0 && n <= max
}
