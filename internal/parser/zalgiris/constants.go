package zalgiris

import (
	"regexp"
	"time"
)

const (
	// How long after kickoff a match without a result is still treated as not finished.
	resultGrace = 3 * time.Hour


	// Text window scanned around each match link when the page ships as an escaped payload.
	payloadWindow = 6000
	hrefTailLimit = 200

	minTeamNameLen = 2
	maxTeamNameLen = 50
	maxHeaderLen   = 60
	maxTVLen       = 60

	tvLabel              = "Transliacijos"
	matchLinkSelector    = `a[href*="/rungtynes/"]`
	ticketLinkSelector   = `a[href*="koobin.com"]`
	leagueHeaderSelector = `[class*="text-white/60"][class*="text-2xs"].truncate`
	scoreSelector        = ".tabular-nums"
	genericTeamAlt       = "žalgiris team"
)

// Leagues recognised by name; the first one found in a card wins.
var knownLeagues = []string{
	"Eurolyga",
	"Lietuvos Krepšinio Lyga",
	"Karaliaus Mindaugo Taurė",
	"KMT",
	"LKL",
}

var (
	matchLinkRE = regexp.MustCompile(`(?i)/rungtynes/([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)
	// "PN, 01-30, 21:30"; the weekday prefix is optional and ignored.
	kickoffRE = regexp.MustCompile(`\b(\d{2})-(\d{2})\s*,\s*(\d{2}):(\d{2})\b`)
	liveRE    = regexp.MustCompile(`(?i)\b(live|gyvai|tiesiogiai)\b`)

	// Escaped payload variants.
	imgEscRE   = regexp.MustCompile(`\\"src\\":\\"([^"\\]+)\\"[^}]*?\\"alt\\":\\"([^"\\]+)\\"`)
	altEscRE   = regexp.MustCompile(`\\"alt\\":\\"([^"\\]{2,50})\\"`)
	scoreEscRE = regexp.MustCompile(`\\"className\\":\\"[^"\\]*tabular-nums[^"\\]*\\",\\"children\\":\\"([^"\\]{1,3})\\"`)
	tvEscRE    = regexp.MustCompile(`Transliacijos\\"[^{]*\{[^}]*?\\"children\\":\\"([^"\\]{1,60})\\"`)
	koobinRE   = regexp.MustCompile(`https?://[A-Za-z0-9.-]*koobin\.com(?:[^\s"'<>\\]|\\u0026)*`)
)
