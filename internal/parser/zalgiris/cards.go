package zalgiris

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

type matchLink struct {
	id     string
	anchor *goquery.Selection
}

// matchLinks returns the first link to each match under sel, in document order.
func matchLinks(sel *goquery.Selection) []matchLink {
	seen := make(map[string]struct{})
	var links []matchLink
	sel.Find(matchLinkSelector).Each(func(_ int, a *goquery.Selection) {
		m := matchLinkRE.FindStringSubmatch(a.AttrOr("href", ""))
		if m == nil {
			return
		}
		id := strings.ToLower(m[1])
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		links = append(links, matchLink{id: id, anchor: a})
	})
	return links
}

func (p *Parser) parseCards(links []matchLink, now time.Time) []matches.MatchRecord {
	records := make([]matches.MatchRecord, 0, len(links))
	for _, link := range links {
		rec, ok := p.parseCard(link, p.enclosingCard(link.anchor), now)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// enclosingCard walks up from the match link to the nearest element holding both team logos.
// It never climbs into a container that lists other matches.
func (p *Parser) enclosingCard(anchor *goquery.Selection) *goquery.Selection {
	best := anchor.Parent()
	for node := anchor.Parent(); node.Length() > 0 && !node.Is("body, html"); node = node.Parent() {
		if len(matchLinks(node)) > 1 {
			break
		}
		best = node
		if len(p.teamImages(node)) >= 2 {
			return node
		}
	}
	return best
}

func (p *Parser) parseCard(link matchLink, card *goquery.Selection, now time.Time) (matches.MatchRecord, bool) {
	text := cardText(card)
	kickoff, ok := p.kickoff(text, now)
	if !ok {
		return matches.MatchRecord{}, false
	}

	score := cardScore(card)
	rec := matches.MatchRecord{
		ID:          link.id,
		Kickoff:     kickoff,
		Status:      classify(liveRE.MatchString(text), score != nil, kickoff, now),
		Score:       score,
		Competition: cardCompetition(card, text),
		TV:          cardTV(card),
		InfoURL:     p.resolve(link.anchor.AttrOr("href", "")),
		TicketsURL:  strings.TrimSpace(card.Find(ticketLinkSelector).First().AttrOr("href", "")),
	}
	p.applyTeams(&rec, p.teamImages(card))
	return rec, true
}

func (p *Parser) teamImages(sel *goquery.Selection) []teamImage {
	var teams []teamImage
	sel.Find("img[alt]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		teams = p.addTeam(teams, img.AttrOr("alt", ""), img.AttrOr("src", ""))
		return len(teams) < 2
	})
	return teams
}

// cardText joins the card's text nodes with single spaces.
func cardText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(normalizeSpace(c.Text())); t != "" {
					parts = append(parts, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return strings.Join(parts, " ")
}

func cardScore(card *goquery.Selection) *matches.Score {
	var values []string
	card.Find(scoreSelector).Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.Text())
	})
	return scoreFrom(values)
}

func cardCompetition(card *goquery.Selection, text string) string {
	if league := knownLeague(text); league != "" {
		return league
	}
	header := strings.TrimSpace(normalizeSpace(card.Find(leagueHeaderSelector).First().Text()))
	if len([]rune(header)) >= 3 && withinLen(header, maxHeaderLen) {
		return header
	}
	return ""
}

func cardTV(card *goquery.Selection) string {
	label := card.Find("p, span, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Children().Length() == 0 && strings.EqualFold(strings.TrimSpace(s.Text()), tvLabel)
	}).First()
	if label.Length() == 0 {
		return ""
	}
	tv := strings.TrimSpace(normalizeSpace(label.Next().Text()))
	if !withinLen(tv, maxTVLen) {
		return ""
	}
	return tv
}
