package nlq

import (
	"regexp"
	"strings"
)

// teamAliases maps nicknames, city names, and abbreviations to the set of
// abbreviation codes a franchise's games are stored under. Relocated or
// renamed franchises carry every historical code (Nets → BKN and NJN), so
// "vs Nets" matches New Jersey-era games too.
var teamAliases = map[string][]string{
	"GSW": {"GSW"}, "WARRIORS": {"GSW"}, "GOLDEN STATE": {"GSW"},
	"WAS": {"WAS", "WSB"}, "WIZARDS": {"WAS", "WSB"}, "WASHINGTON WIZARDS": {"WAS", "WSB"}, "WASHINGTON": {"WAS", "WSB"},
	"WSB": {"WSB", "WAS"}, "BULLETS": {"WSB", "WAS"},

	"LAL": {"LAL"}, "LAKERS": {"LAL"}, "LOS ANGELES LAKERS": {"LAL"},
	"BOS": {"BOS"}, "CELTICS": {"BOS"},
	"CHI": {"CHI"}, "BULLS": {"CHI"},
	"NYK": {"NYK"}, "KNICKS": {"NYK"}, "NEW YORK": {"NYK"},

	// Nets: Brooklyn / New Jersey
	"BKN": {"BKN", "NJN"}, "NETS": {"BKN", "NJN"}, "BROOKLYN NETS": {"BKN", "NJN"},
	"NJN": {"NJN", "BKN"}, "NEW JERSEY NETS": {"NJN", "BKN"},

	// Hornets: CHH and CHA interleave; the Bobcats era folded into CHA
	"CHA": {"CHA", "CHH"}, "HORNETS": {"CHA", "CHH"}, "CHARLOTTE HORNETS": {"CHA", "CHH"},
	"CHH": {"CHH", "CHA"}, "BOBCATS": {"CHA"},

	// Pelicans: NOP / NOH / NOK (post-Katrina Oklahoma City seasons)
	"NOP": {"NOP", "NOH", "NOK"}, "PELICANS": {"NOP", "NOH", "NOK"}, "NEW ORLEANS": {"NOP", "NOH", "NOK"},
	"NOH": {"NOH", "NOP", "NOK"}, "NOK": {"NOK", "NOP", "NOH"},

	// Grizzlies: Memphis / Vancouver
	"MEM": {"MEM", "VAN"}, "GRIZZLIES": {"MEM", "VAN"},
	"VAN": {"VAN", "MEM"}, "VANCOUVER GRIZZLIES": {"VAN", "MEM"},

	// Thunder / SuperSonics
	"OKC": {"OKC", "SEA"}, "THUNDER": {"OKC", "SEA"},
	"SEA": {"SEA", "OKC"}, "SONICS": {"SEA", "OKC"},

	"PHX": {"PHX"}, "SUNS": {"PHX"},
	"PHI": {"PHI"}, "SIXERS": {"PHI"}, "76ERS": {"PHI"}, "PHI76ERS": {"PHI"},
	"POR": {"POR"}, "TRAIL BLAZERS": {"POR"}, "BLAZERS": {"POR"},
	"CLE": {"CLE"}, "CAVS": {"CLE"}, "CAVALIERS": {"CLE"},
	"MIA": {"MIA"}, "HEAT": {"MIA"},
	"SAS": {"SAS"}, "SPURS": {"SAS"},
	"DAL": {"DAL"}, "MAVS": {"DAL"}, "MAVERICKS": {"DAL"},
	"DEN": {"DEN"}, "NUGGETS": {"DEN"},
	"MIL": {"MIL"}, "BUCKS": {"MIL"},
	"TOR": {"TOR"}, "RAPTORS": {"TOR"},
	"ORL": {"ORL"}, "MAGIC": {"ORL"},
	"DET": {"DET"}, "PISTONS": {"DET"},
	"IND": {"IND"}, "PACERS": {"IND"},
	"ATL": {"ATL"}, "HAWKS": {"ATL"},
	"UTA": {"UTA"}, "JAZZ": {"UTA"},
	"MIN": {"MIN"}, "TIMBERWOLVES": {"MIN"}, "WOLVES": {"MIN"},
	"SAC": {"SAC"}, "KINGS": {"SAC"},
}

var bareCodeRe = regexp.MustCompile(`^[A-Z]{2,4}$`)

// ResolveOpponent maps a free-text opponent phrase to the set of abbreviation
// codes it stands for. Lookup order: cleaned key, key with a trailing S
// stripped, last word of the key (handles "the new york"), then a bare
// 2-4 letter code accepted verbatim. Returns nil for empty input or no
// match at all; an unrecognized phrase means "no opponent filter", not an
// error.
func ResolveOpponent(raw string) []string {
	key := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToUpper(raw), ".", "")), " ")
	key = strings.TrimPrefix(key, "THE ")
	key = strings.TrimSuffix(key, " TEAM")
	if key == "" {
		return nil
	}

	if codes := lookupAlias(key); codes != nil {
		return codes
	}

	words := strings.Split(key, " ")
	last := words[len(words)-1]
	if codes := lookupAlias(last); codes != nil {
		return codes
	}

	if bareCodeRe.MatchString(key) {
		return []string{key}
	}
	return nil
}

func lookupAlias(key string) []string {
	if codes, ok := teamAliases[key]; ok {
		return codes
	}
	// de-pluralize a simple trailing S ("celtics team" cleanup artifacts)
	if codes, ok := teamAliases[strings.TrimSuffix(key, "S")]; ok {
		return codes
	}
	return nil
}
