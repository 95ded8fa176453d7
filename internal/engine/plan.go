package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtsight/statline/internal/nlq"
)

// factTable is the fact table holding one row per player-game.
const factTable = "box_scores"

// seasonTypeColumns are the candidate column names probed for season-type
// filtering. Schemas drift; whichever of these exist get a case-insensitive
// substring predicate, OR-combined. None present means the filter is
// skipped — graceful degradation, not an error.
var seasonTypeColumns = []string{"season_type", "type", "season", "stage"}

// plan is a resolved, executable query: the player, the shared predicate
// set with its parameter bag, and a human-readable fragment describing the
// applied filters. Built per request, discarded after use.
type plan struct {
	Player  Player
	Parsed  nlq.ParsedQuery
	Context string

	where  []string
	params map[string]any
}

// buildPlan parses the text, resolves the player, and assembles the filter
// predicates shared by the aggregate and detail queries.
func (e *Engine) buildPlan(ctx context.Context, text string) (*plan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	parsed := nlq.Parse(text)
	player, err := e.resolvePlayer(ctx, parsed.PlayerName)
	if err != nil {
		return nil, err
	}

	p := &plan{
		Player: player,
		Parsed: parsed,
		where:  []string{"player_id = @pid"},
		params: map[string]any{"pid": player.ID},
	}

	if len(parsed.OpponentCodes) > 0 {
		ph := make([]string, len(parsed.OpponentCodes))
		for i, code := range parsed.OpponentCodes {
			key := fmt.Sprintf("opp%d", i)
			ph[i] = "@" + key
			p.params[key] = code
		}
		p.where = append(p.where, fmt.Sprintf("opponent_abbr IN (%s)", strings.Join(ph, ", ")))
	}

	if parsed.SeasonType != "" {
		if err := p.addSeasonFilter(ctx, e, parsed.SeasonType); err != nil {
			return nil, err
		}
	}

	if parsed.DateFrom != "" {
		p.where = append(p.where, "game_date >= @from")
		p.params["from"] = parsed.DateFrom
	}
	if parsed.DateTo != "" {
		p.where = append(p.where, "game_date <= @to")
		p.params["to"] = parsed.DateTo
	}

	if parsed.WindowSize != nil {
		p.params["n"] = *parsed.WindowSize
	}

	p.Context = buildContext(parsed)
	return p, nil
}

// addSeasonFilter probes which season-type candidate columns the fact table
// actually has and predicates on each present one.
func (p *plan) addSeasonFilter(ctx context.Context, e *Engine, st nlq.SeasonType) error {
	cols, err := e.store.Columns(ctx, factTable)
	if err != nil {
		return &QueryError{Op: "probe schema", Err: err}
	}
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}

	like := "%regular%"
	if st == nlq.SeasonPlayoffs {
		like = "%playoff%"
	}

	var clauses []string
	for i, c := range seasonTypeColumns {
		if !present[c] {
			continue
		}
		key := fmt.Sprintf("season_like_%d", i)
		p.params[key] = like
		clauses = append(clauses, fmt.Sprintf("lower(%s) LIKE @%s", c, key))
	}
	switch len(clauses) {
	case 0:
		// No recognizable season column; skip the filter.
	case 1:
		p.where = append(p.where, clauses[0])
	default:
		p.where = append(p.where, "("+strings.Join(clauses, " OR ")+")")
	}
	return nil
}

// subQuery returns the shared row selection: unbounded for career/range
// mode, most-recent-N for window mode.
func (p *plan) subQuery() string {
	base := fmt.Sprintf("SELECT * FROM %s WHERE %s", factTable, strings.Join(p.where, " AND "))
	if p.Parsed.WindowSize == nil {
		return base
	}
	return base + " ORDER BY game_date DESC LIMIT @n"
}

// buildContext renders the applied filters as a short fragment for output
// lines, e.g. "vs BKN/NJN (career) playoffs since 2018".
func buildContext(parsed nlq.ParsedQuery) string {
	var opp string
	if len(parsed.OpponentCodes) > 0 {
		opp = "vs " + strings.Join(parsed.OpponentCodes, "/")
	}
	var span string
	if parsed.WindowSize == nil {
		span = " (career)"
	}
	var st string
	if parsed.SeasonType != "" {
		st = " " + string(parsed.SeasonType)
	}
	var rng string
	switch {
	case parsed.DateFrom != "" && parsed.DateTo != "":
		rng = fmt.Sprintf(" between %s–%s", parsed.DateFrom[:4], parsed.DateTo[:4])
	case parsed.DateFrom != "":
		rng = fmt.Sprintf(" since %s", parsed.DateFrom[:4])
	}
	return strings.TrimSpace(opp + " " + span + st + rng)
}
