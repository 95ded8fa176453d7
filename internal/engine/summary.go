package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// aggRow is the single-row result of the aggregate query: game count plus
// per-game averages for every core stat and shooting split.
type aggRow struct {
	Games int64
	PPG   sql.NullFloat64
	RPG   sql.NullFloat64
	APG   sql.NullFloat64
	SPG   sql.NullFloat64
	BPG   sql.NullFloat64
	TOV   sql.NullFloat64

	FGPct  sql.NullFloat64
	FG3Pct sql.NullFloat64
	FTPct  sql.NullFloat64

	FGM  sql.NullFloat64
	FGA  sql.NullFloat64
	FG3M sql.NullFloat64
	FG3A sql.NullFloat64
	FTM  sql.NullFloat64
	FTA  sql.NullFloat64
}

const aggregateColumns = `
	COUNT(*),
	AVG(PTS), AVG(REB), AVG(AST), AVG(STL), AVG(BLK), AVG(TOV),
	AVG(FG_PCT), AVG(FG3_PCT), AVG(FT_PCT),
	AVG(FGM), AVG(FGA), AVG(FG3M), AVG(FG3A), AVG(FTM), AVG(FTA)`

// Summarize answers a free-text question with one formatted block of text:
// a single stat line when the question named a stat, otherwise the full
// multi-stat summary. Zero matching games yields a fixed "No games found"
// sentence, never an error.
func (e *Engine) Summarize(ctx context.Context, text string) (string, error) {
	p, err := e.buildPlan(ctx, text)
	if err != nil {
		return "", err
	}

	row, err := e.store.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM (%s) sub", aggregateColumns, p.subQuery()), p.params)
	if err != nil {
		return "", &QueryError{Op: "aggregate query", Err: err}
	}

	var agg aggRow
	if err := row.Scan(
		&agg.Games,
		&agg.PPG, &agg.RPG, &agg.APG, &agg.SPG, &agg.BPG, &agg.TOV,
		&agg.FGPct, &agg.FG3Pct, &agg.FTPct,
		&agg.FGM, &agg.FGA, &agg.FG3M, &agg.FG3A, &agg.FTM, &agg.FTA,
	); err != nil {
		return "", &QueryError{Op: "aggregate query", Err: err}
	}

	if agg.Games == 0 {
		if p.Context != "" {
			return fmt.Sprintf("No games found for %s %s.", p.Player.Name, p.Context), nil
		}
		return fmt.Sprintf("No games found for %s.", p.Player.Name), nil
	}

	if p.Parsed.StatFocus != "" {
		return formatStatLine(p, agg), nil
	}
	return formatSummaryBlock(p, agg), nil
}

// formatStatLine renders the single-stat answer, e.g.
// "Stephen Curry vs BOS (last 5 games): 3P% 42.1%".
func formatStatLine(p *plan, agg aggRow) string {
	focus := p.Parsed.StatFocus
	var value string
	switch focus {
	case "fg_pct":
		value = fmtPct(agg.FGPct)
	case "fg3_pct":
		value = fmtPct(agg.FG3Pct)
	case "ft_pct":
		value = fmtPct(agg.FTPct)
	case "ppg":
		value = fmtAvg(agg.PPG)
	case "rpg":
		value = fmtAvg(agg.RPG)
	case "apg":
		value = fmtAvg(agg.APG)
	case "spg":
		value = fmtAvg(agg.SPG)
	case "bpg":
		value = fmtAvg(agg.BPG)
	default:
		value = fmtAvg(agg.TOV)
	}

	pureCareer := p.Parsed.WindowSize == nil && p.Parsed.DateFrom == "" && p.Parsed.DateTo == ""
	gamesNote := fmt.Sprintf(" (last %d games)", agg.Games)
	if pureCareer {
		gamesNote = fmt.Sprintf(" (%d games)", agg.Games)
	}

	return fmt.Sprintf("%s %s%s: %s %s", p.Player.Name, p.Context, gamesNote, focus.Label(), value)
}

// formatSummaryBlock renders the default multi-stat block covering per-game
// averages and shooting splits.
func formatSummaryBlock(p *plan, agg aggRow) string {
	return fmt.Sprintf(
		"%s %s (last %d games):\n"+
			"PPG %s | APG %s | RPG %s | SPG %s | BPG %s | TOV %s\n"+
			"FG%% %s | 3P%% %s | FT%% %s\n"+
			"FGM/FGA %s/%s, 3PM/3PA %s/%s, FTM/FTA %s/%s",
		p.Player.Name, p.Context, agg.Games,
		fmtAvg(agg.PPG), fmtAvg(agg.APG), fmtAvg(agg.RPG),
		fmtAvg(agg.SPG), fmtAvg(agg.BPG), fmtAvg(agg.TOV),
		fmtPct(agg.FGPct), fmtPct(agg.FG3Pct), fmtPct(agg.FTPct),
		fmtAvg(agg.FGM), fmtAvg(agg.FGA),
		fmtAvg(agg.FG3M), fmtAvg(agg.FG3A),
		fmtAvg(agg.FTM), fmtAvg(agg.FTA))
}

// fmtAvg renders a counting average to one decimal place, "-" when null.
func fmtAvg(v sql.NullFloat64) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float64, 'f', 1, 64)
}

// fmtPct renders a percentage average to one decimal place plus "%".
func fmtPct(v sql.NullFloat64) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float64, 'f', 1, 64) + "%"
}
