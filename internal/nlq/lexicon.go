// Package nlq parses free-text basketball questions ("LeBron vs BOS last 10
// games", "Curry career 3P%") into a structured, deterministic query
// description. Parsing is pure and stateless; the only package-level state
// is a set of immutable alias tables initialized at load.
package nlq

import "strings"

// nicknameAliases maps common nicknames to the canonical first name used in
// stored player records. Applied token-by-token during name normalization.
var nicknameAliases = map[string]string{
	"steph": "stephen",
	"bron":  "lebron",
	"mike":  "michael",
	"kd":    "kevin",
	"dame":  "damian",
	"cp3":   "chris",
	"book":  "devin",
	"pg":    "paul",
	"tatum": "jayson",
}

// NameTokens lower-cases a free-text player name, collapses whitespace,
// splits on spaces, and substitutes known nicknames. Token order is
// preserved; callers match tokens conjunctively, so order only matters for
// display.
func NameTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	tokens := make([]string, 0, len(fields))
	for _, t := range fields {
		if canon, ok := nicknameAliases[t]; ok {
			t = canon
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// wordNumbers covers one..nineteen plus the tens up to ninety. Compounds are
// handled by summing whitespace-separated words ("twenty four" = 24).
var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// ParseWordNumber sums a whitespace-separated sequence of spelled-out
// number words. Returns false if any word is unrecognized or the sum is
// zero. Hyphenated compounds must be split to spaces by the caller.
func ParseWordNumber(text string) (int, bool) {
	total := 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		n, ok := wordNumbers[w]
		if !ok {
			return 0, false
		}
		total += n
	}
	if total == 0 {
		return 0, false
	}
	return total, true
}
