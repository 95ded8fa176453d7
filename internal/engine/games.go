package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtsight/statline/internal/nlq"
)

// GameRow is one game's line for the per-game table. Nullable stats render
// as JSON null. Field names match the serving schema so existing front
// ends read them directly.
type GameRow struct {
	GameDate  string   `json:"game_date"`
	Opponent  string   `json:"opponent_abbr"`
	Team      string   `json:"team_abbr"`
	Minutes   *float64 `json:"MIN"`
	Points    *float64 `json:"PTS"`
	Rebounds  *float64 `json:"REB"`
	Assists   *float64 `json:"AST"`
	Steals    *float64 `json:"STL"`
	Blocks    *float64 `json:"BLK"`
	Turnovers *float64 `json:"TOV"`
	FGPct     *float64 `json:"FG_PCT"`
	FG3Pct    *float64 `json:"FG3_PCT"`
	FTPct     *float64 `json:"FT_PCT"`
}

// GamesResult is the per-game answer: the resolved player, the rows newest
// first, and whether the query spanned the whole career (no window, no
// date bounds).
type GamesResult struct {
	Player string    `json:"player"`
	Rows   []GameRow `json:"rows"`
	Career bool      `json:"career"`
}

// DefaultGamesLimit is the detail-row limit applied when the text names no
// window and the caller passes no limit.
const DefaultGamesLimit = 25

// ListGames answers a free-text question with the per-game detail table,
// ordered by date descending. An explicit "last N" in the text overrides
// the caller's limit; either way the limit is clamped to [1, 400].
func (e *Engine) ListGames(ctx context.Context, text string, limit int) (*GamesResult, error) {
	p, err := e.buildPlan(ctx, text)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultGamesLimit
	}
	if p.Parsed.WindowSize != nil {
		limit = *p.Parsed.WindowSize
	}
	if limit > nlq.MaxWindow {
		limit = nlq.MaxWindow
	}
	p.params["lim"] = limit

	rows, err := e.store.Query(ctx, fmt.Sprintf(
		`SELECT game_date, opponent_abbr, team_abbr,
		        MIN, PTS, REB, AST, STL, BLK, TOV, FG_PCT, FG3_PCT, FT_PCT
		 FROM (%s) sub
		 ORDER BY game_date DESC
		 LIMIT @lim`, p.subQuery()), p.params)
	if err != nil {
		return nil, &QueryError{Op: "games query", Err: err}
	}
	defer rows.Close()

	result := &GamesResult{
		Player: p.Player.Name,
		Rows:   []GameRow{},
		Career: p.Parsed.WindowSize == nil && p.Parsed.DateFrom == "" && p.Parsed.DateTo == "",
	}
	for rows.Next() {
		var g GameRow
		var mins, pts, reb, ast, stl, blk, tov, fg, fg3, ft sql.NullFloat64
		if err := rows.Scan(&g.GameDate, &g.Opponent, &g.Team,
			&mins, &pts, &reb, &ast, &stl, &blk, &tov, &fg, &fg3, &ft); err != nil {
			return nil, &QueryError{Op: "games query", Err: err}
		}
		g.Minutes = nullable(mins)
		g.Points = nullable(pts)
		g.Rebounds = nullable(reb)
		g.Assists = nullable(ast)
		g.Steals = nullable(stl)
		g.Blocks = nullable(blk)
		g.Turnovers = nullable(tov)
		g.FGPct = nullable(fg)
		g.FG3Pct = nullable(fg3)
		g.FTPct = nullable(ft)
		result.Rows = append(result.Rows, g)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "games query", Err: err}
	}
	return result, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
