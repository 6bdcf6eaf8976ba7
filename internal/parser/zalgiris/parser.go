// Package zalgiris parses the Žalgiris club schedule page.
package zalgiris

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/parser"
)

// Config controls how relative links, team names and kickoff times are interpreted.
type Config struct {
	BaseURL  string
	TeamName string
	Location *time.Location
	Now      func() time.Time
}

// Parser extracts match records from the schedule page.
type Parser struct {
	baseURL *url.URL
	generic map[string]struct{}
	loc     *time.Location
	now     func() time.Time
}

var _ parser.Parser = (*Parser)(nil)

// New constructs a parser.
func New(cfg Config) *Parser {
	p := &Parser{
		generic: map[string]struct{}{genericTeamAlt: {}},
		loc:     cfg.Location,
		now:     cfg.Now,
	}
	if base, err := url.Parse(strings.TrimSpace(cfg.BaseURL)); err == nil && base.IsAbs() {
		p.baseURL = base
	}
	if team := strings.ToLower(strings.TrimSpace(cfg.TeamName)); team != "" {
		p.generic[team+" team"] = struct{}{}
	}
	if p.loc == nil {
		p.loc = time.UTC
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Parse returns the matches listed in body in page order.
// Rows without a recognisable kickoff are skipped.
func (p *Parser) Parse(body []byte) ([]matches.MatchRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &parser.ParseError{Reason: "empty document"}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &parser.ParseError{Reason: "unreadable document", Err: err}
	}

	now := p.now().In(p.loc)
	if links := matchLinks(doc.Selection); len(links) > 0 {
		return p.parseCards(links, now), nil
	}

	raw := string(body)
	if links := payloadLinks(raw); len(links) > 0 {
		return p.parsePayload(raw, links, now), nil
	}

	if doc.Find("body *").Length() == 0 {
		return nil, &parser.ParseError{Reason: "no element content"}
	}
	return []matches.MatchRecord{}, nil
}

func (p *Parser) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || p.baseURL == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.baseURL.ResolveReference(u).String()
}

func (p *Parser) isGeneric(alt string) bool {
	_, ok := p.generic[strings.ToLower(alt)]
	return ok
}

type teamImage struct {
	name string
	logo string
}

func (p *Parser) addTeam(teams []teamImage, name, logo string) []teamImage {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < minTeamNameLen || n > maxTeamNameLen || p.isGeneric(name) {
		return teams
	}
	for _, t := range teams {
		if t.name == name {
			return teams
		}
	}
	return append(teams, teamImage{name: name, logo: strings.TrimSpace(logo)})
}

func (p *Parser) applyTeams(rec *matches.MatchRecord, teams []teamImage) {
	if len(teams) > 0 {
		rec.Home = teams[0].name
		rec.HomeLogo = p.resolve(teams[0].logo)
	}
	if len(teams) > 1 {
		rec.Away = teams[1].name
		rec.AwayLogo = p.resolve(teams[1].logo)
	}
}

// classify derives a status from one page. A match that has kicked off but shows
// neither a live badge nor a result stays upcoming until resultGrace has passed,
// so a badge appearing on a later page can still move it to live.
func classify(live bool, hasScore bool, kickoff, now time.Time) matches.Status {
	switch {
	case live:
		return matches.StatusLive
	case kickoff.After(now):
		return matches.StatusUpcoming
	case hasScore, now.Sub(kickoff) >= resultGrace:
		return matches.StatusFinished
	default:
		return matches.StatusUpcoming
	}
}
