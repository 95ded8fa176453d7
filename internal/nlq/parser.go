package nlq

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SeasonType filters box scores to playoff or regular-season games.
type SeasonType string

const (
	SeasonPlayoffs SeasonType = "playoffs"
	SeasonRegular  SeasonType = "regular"
)

// StatKey identifies a single statistic the user asked about. Empty means
// the default multi-stat summary.
type StatKey string

const (
	StatFG3Pct StatKey = "fg3_pct"
	StatFGPct  StatKey = "fg_pct"
	StatFTPct  StatKey = "ft_pct"
	StatPPG    StatKey = "ppg"
	StatRPG    StatKey = "rpg"
	StatAPG    StatKey = "apg"
	StatSPG    StatKey = "spg"
	StatBPG    StatKey = "bpg"
	StatTOV    StatKey = "tov"
)

// IsPercentage reports whether the stat renders as a percentage.
func (k StatKey) IsPercentage() bool {
	return k == StatFGPct || k == StatFG3Pct || k == StatFTPct
}

// Label returns the display label for the stat ("FG%", "PPG", ...).
func (k StatKey) Label() string {
	switch k {
	case StatFGPct:
		return "FG%"
	case StatFG3Pct:
		return "3P%"
	case StatFTPct:
		return "FT%"
	default:
		return strings.ToUpper(string(k))
	}
}

// ParsedQuery is the parser's output contract: the residual player name plus
// every filter extracted from the text. All fields are request-local; the
// name is raw text, not yet resolved against stored players.
type ParsedQuery struct {
	PlayerName    string
	OpponentCodes []string   // nil = no opponent filter
	WindowSize    *int       // nil = career / unbounded; else clamped to [1, 400]
	SeasonType    SeasonType // "" = no season-type filter
	DateFrom      string     // "YYYY-MM-DD" inclusive, "" = unset
	DateTo        string     // "YYYY-MM-DD" inclusive, "" = unset
	StatFocus     StatKey    // "" = multi-stat summary
}

// DefaultWindow is the game count applied when the text names neither a
// window nor a career/date scope.
const DefaultWindow = 10

// MaxWindow caps every recency window and detail limit.
const MaxWindow = 400

// statRule pairs a stat key with the patterns that select it. Rules are
// evaluated in order with first-match-wins; three-point patterns come before
// field-goal patterns so "3P%" is never read as a field-goal phrase.
type statRule struct {
	key      StatKey
	patterns []*regexp.Regexp
}

var statRules = []statRule{
	{StatFG3Pct, []*regexp.Regexp{regexp.MustCompile(`(?i)\b(?:three[-\s]?point|3p|3pt)\s*(?:percentage|pct|%)?\b`)}},
	{StatFGPct, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfg\s*%?\b`),
		regexp.MustCompile(`(?i)\bfield\s*goal\s*(?:percentage|pct|%)\b`),
	}},
	{StatFTPct, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bft\s*%?\b`),
		regexp.MustCompile(`(?i)\bfree\s*throw\s*(?:percentage|pct|%)\b`),
	}},
	{StatPPG, []*regexp.Regexp{regexp.MustCompile(`(?i)\bpoints?\b`), regexp.MustCompile(`(?i)\bpts\b`)}},
	{StatRPG, []*regexp.Regexp{regexp.MustCompile(`(?i)\brebounds?\b`), regexp.MustCompile(`(?i)\breb\b`)}},
	{StatAPG, []*regexp.Regexp{regexp.MustCompile(`(?i)\bass?ists?\b`), regexp.MustCompile(`(?i)\bast\b`)}},
	{StatSPG, []*regexp.Regexp{regexp.MustCompile(`(?i)\bsteals?\b`), regexp.MustCompile(`(?i)\bstl\b`)}},
	{StatBPG, []*regexp.Regexp{regexp.MustCompile(`(?i)\bblocks?\b`), regexp.MustCompile(`(?i)\bblk\b`)}},
	{StatTOV, []*regexp.Regexp{regexp.MustCompile(`(?i)\bturnovers?\b`), regexp.MustCompile(`(?i)\btov\b`)}},
}

// statPhraseRe matches any stat-ish tail. Used to slice the player name, not
// to classify the stat.
var statPhraseRe = regexp.MustCompile(`(?i)\b(?:(?:three[-\s]?point|3p|3pt)\s*(?:percentage|pct|%?)|fg\s*%?|field\s*goal\s*(?:percentage|pct|%?)|free\s*throw\s*(?:percentage|pct|%?)|ft\s*%?|points?|rebounds?|ass?ists?|steals?|blocks?|turnovers?|3pt%|3p%|ft%|fg%)\b`)

// trailingStatRe strips a stat suffix from a bare "<name> points" query.
var trailingStatRe = regexp.MustCompile(`(?i)\b(three[-\s]?point|3p|3pt|fg|field\s*goal|free\s*throw|ft|points?|rebounds?|ass?ists?|steals?|blocks?|turnovers?)\s*(percentage|pct|%)?\s*$`)

var (
	playoffsRe   = regexp.MustCompile(`(?i)\bplayoffs?\b`)
	regularRe    = regexp.MustCompile(`(?i)\bregular\b`)
	careerRe     = regexp.MustCompile(`(?i)\bcareer\b`)
	lastDigitsRe = regexp.MustCompile(`(?i)\blast\s+(\d+)(?:\s+games?)?\b`)
	lastWordsRe  = regexp.MustCompile(`(?i)\blast\s+([a-z\s-]+?)(?:\s+games?)?\b`)
	sinceRe      = regexp.MustCompile(`(?i)\bsince\s+(\d{4})\b`)
	betweenRe    = regexp.MustCompile(`(?i)\bbetween\s+(\d{4})\s+and\s+(\d{4})\b`)
	opponentRe   = regexp.MustCompile(`(?i)\b(?:vs|against)\s+([A-Za-z.\s]{2,40})`)
	oppStopRe    = regexp.MustCompile(`(?i)\b(?:last|career|playoffs?|regular|since|between)\b`)
	leadingTheRe = regexp.MustCompile(`(?i)^the\s+`)
)

// cutMarkers are the control phrases whose earliest occurrence ends the
// player name.
var cutMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+vs\s+`),
	regexp.MustCompile(`(?i)\s+against\s+`),
	regexp.MustCompile(`(?i)\s+last\s+`),
	regexp.MustCompile(`(?i)\s+career\b`),
	regexp.MustCompile(`(?i)\s+playoffs?\b`),
	regexp.MustCompile(`(?i)\s+regular\b`),
	regexp.MustCompile(`(?i)\s+since\s+`),
	regexp.MustCompile(`(?i)\s+between\s+`),
	statPhraseRe,
}

// Parse extracts a ParsedQuery from raw text. Pure and deterministic;
// extraction order matters because name slicing depends on the positions of
// the control phrases found by the earlier steps.
//
// Preserved edge policies: "regular" overrides "playoffs" when both appear;
// an opponent phrase that resolves to nothing drops the filter silently;
// "career" wins over any "last N"; a since/between range without a digit
// "last N" unbounds the window.
func Parse(input string) ParsedQuery {
	s := strings.TrimSpace(input)
	q := ParsedQuery{PlayerName: s}

	q.StatFocus = findStatFocus(s)

	if playoffsRe.MatchString(s) {
		q.SeasonType = SeasonPlayoffs
	}
	if regularRe.MatchString(s) {
		q.SeasonType = SeasonRegular
	}

	if !careerRe.MatchString(s) {
		n := DefaultWindow
		if m := lastDigitsRe.FindStringSubmatch(s); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				n = clampWindow(v)
			}
		} else if m := lastWordsRe.FindStringSubmatch(s); m != nil {
			if v, ok := ParseWordNumber(strings.ReplaceAll(m[1], "-", " ")); ok {
				n = clampWindow(v)
			}
		}
		q.WindowSize = &n
	}

	q.OpponentCodes = parseOpponent(s)

	if m := sinceRe.FindStringSubmatch(s); m != nil {
		q.DateFrom = m[1] + "-01-01"
	}
	if m := betweenRe.FindStringSubmatch(s); m != nil {
		y1, _ := strconv.Atoi(m[1])
		y2, _ := strconv.Atoi(m[2])
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		q.DateFrom = fmt.Sprintf("%d-01-01", y1)
		q.DateTo = fmt.Sprintf("%d-12-31", y2)
	}

	// A date range bounds the result set by itself: unless an explicit
	// digit window was typed, do not additionally truncate to a count.
	if (q.DateFrom != "" || q.DateTo != "") && !lastDigitsRe.MatchString(s) {
		q.WindowSize = nil
	}

	q.PlayerName = slicePlayerName(s)
	return q
}

func findStatFocus(s string) StatKey {
	for _, rule := range statRules {
		for _, re := range rule.patterns {
			if re.MatchString(s) {
				return rule.key
			}
		}
	}
	return ""
}

// parseOpponent captures the phrase after "vs"/"against" up to the next
// control keyword, then resolves it through the team alias table.
func parseOpponent(s string) []string {
	m := opponentRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	phrase := m[1]
	if loc := oppStopRe.FindStringIndex(phrase); loc != nil {
		phrase = phrase[:loc[0]]
	}
	phrase = leadingTheRe.ReplaceAllString(strings.TrimSpace(phrase), "")
	return ResolveOpponent(phrase)
}

// slicePlayerName takes the text before the earliest control phrase. When no
// control phrase exists anywhere, the query is shaped like "<name> points",
// so a trailing stat phrase is stripped instead.
func slicePlayerName(s string) string {
	cut := len(s)
	for _, re := range cutMarkers {
		if loc := re.FindStringIndex(s); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	name := strings.TrimSpace(s[:cut])
	if len(name) == len(s) {
		name = strings.TrimSpace(trailingStatRe.ReplaceAllString(name, ""))
	}
	return name
}

func clampWindow(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxWindow {
		return MaxWindow
	}
	return n
}
