package zalgiris

import (
	"regexp"
	"strings"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// payloadLink locates the first mention of a match link in an escaped page payload.
type payloadLink struct {
	id    string
	start int
	end   int
}

var payloadUnescaper = strings.NewReplacer(`\u0026`, "&", `\/`, "/", "&amp;", "&")

func payloadLinks(raw string) []payloadLink {
	seen := make(map[string]struct{})
	var links []payloadLink
	for _, loc := range matchLinkRE.FindAllStringSubmatchIndex(raw, -1) {
		id := strings.ToLower(raw[loc[2]:loc[3]])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		end := loc[1]
		if tail := strings.IndexAny(raw[end:], `\"`); tail >= 0 && tail <= hrefTailLimit {
			end += tail
		}
		links = append(links, payloadLink{id: id, start: loc[0], end: end})
	}
	return links
}

// parsePayload scans a text window before each link. A card's fields precede
// its link, so each window starts no earlier than the previous link.
func (p *Parser) parsePayload(raw string, links []payloadLink, now time.Time) []matches.MatchRecord {
	records := make([]matches.MatchRecord, 0, len(links))
	prevEnd := 0
	for _, link := range links {
		start := link.start - payloadWindow/2
		if start < prevEnd {
			start = prevEnd
		}
		window := raw[start:link.end]
		prevEnd = link.end

		rec, ok := p.parsePayloadCard(link, raw[link.start:link.end], window, now)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (p *Parser) parsePayloadCard(link payloadLink, href, window string, now time.Time) (matches.MatchRecord, bool) {
	kickoff, ok := p.kickoff(window, now)
	if !ok {
		return matches.MatchRecord{}, false
	}

	score := scoreFrom(submatches(scoreEscRE, window, 1))
	rec := matches.MatchRecord{
		ID:          link.id,
		Kickoff:     kickoff,
		Status:      classify(liveRE.MatchString(window), score != nil, kickoff, now),
		Score:       score,
		Competition: knownLeague(window),
		InfoURL:     p.resolve(payloadUnescaper.Replace(href)),
		TicketsURL:  payloadUnescaper.Replace(koobinRE.FindString(window)),
	}
	if m := tvEscRE.FindStringSubmatch(window); m != nil {
		if tv := strings.TrimSpace(m[1]); withinLen(tv, maxTVLen) {
			rec.TV = tv
		}
	}

	logos := make(map[string]string)
	for _, m := range imgEscRE.FindAllStringSubmatch(window, -1) {
		alt := strings.TrimSpace(m[2])
		if _, ok := logos[alt]; !ok {
			logos[alt] = payloadUnescaper.Replace(m[1])
		}
	}
	var teams []teamImage
	for _, alt := range submatches(altEscRE, window, 1) {
		teams = p.addTeam(teams, alt, logos[strings.TrimSpace(alt)])
		if len(teams) == 2 {
			break
		}
	}
	p.applyTeams(&rec, teams)
	return rec, true
}

func submatches(re *regexp.Regexp, text string, group int) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[group])
	}
	return out
}
