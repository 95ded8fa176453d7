// Package etl loads raw CSV box-score exports into the normalized serving
// tables (players, teams, games, box_scores). Batch only: it drops and
// rebuilds the serving tables on every run.
package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/courtsight/statline/internal/store"
)

// Result tracks row counts and per-file errors from an ETL run.
type Result struct {
	Files     []string
	Players   int
	Teams     int
	Games     int
	BoxScores int
	Errors    []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("files=%d players=%d teams=%d games=%d box_scores=%d errors=%d",
		len(r.Files), r.Players, r.Teams, r.Games, r.BoxScores, len(r.Errors))
}

// statColumns are the numeric box-score columns, in serving-schema order.
// The map value is the raw CSV header each one comes from.
var statColumns = []struct{ col, csvHeader string }{
	{"MIN", "min"}, {"PTS", "pts"},
	{"FGM", "fgm"}, {"FGA", "fga"}, {"FG_PCT", "fg%"},
	{"FG3M", "3pm"}, {"FG3A", "3pa"}, {"FG3_PCT", "3p%"},
	{"FTM", "ftm"}, {"FTA", "fta"}, {"FT_PCT", "ft%"},
	{"OREB", "oreb"}, {"DREB", "dreb"}, {"REB", "reb"},
	{"AST", "ast"}, {"STL", "stl"}, {"BLK", "blk"}, {"TOV", "tov"},
	{"PF", "pf"}, {"PLUS_MINUS", "+/-"},
}

const schemaSQL = `
DROP TABLE IF EXISTS players;
DROP TABLE IF EXISTS teams;
DROP TABLE IF EXISTS games;
DROP TABLE IF EXISTS box_scores;

CREATE TABLE players(
	player_id INTEGER PRIMARY KEY,
	player_name TEXT NOT NULL
);
CREATE TABLE teams(
	abbr TEXT PRIMARY KEY
);
CREATE TABLE games(
	game_id TEXT PRIMARY KEY,
	game_date TEXT,
	season INTEGER,
	season_type TEXT,
	home_team_abbr TEXT,
	away_team_abbr TEXT
);
CREATE TABLE box_scores(
	game_id TEXT,
	player_id INTEGER,
	player_name TEXT,
	team_abbr TEXT,
	opponent_abbr TEXT,
	game_date TEXT,
	season INTEGER,
	season_type TEXT,
	MIN REAL,
	PTS REAL,
	FGM REAL, FGA REAL, FG_PCT REAL,
	FG3M REAL, FG3A REAL, FG3_PCT REAL,
	FTM REAL, FTA REAL, FT_PCT REAL,
	OREB REAL, DREB REAL, REB REAL,
	AST REAL, STL REAL, BLK REAL, TOV REAL,
	PF REAL, PLUS_MINUS REAL, win INTEGER
);
CREATE INDEX idx_box_player_date ON box_scores(player_id, game_date DESC);
CREATE INDEX idx_box_player_opp_date ON box_scores(player_id, opponent_abbr, game_date DESC);
`

// batchSize rows per insert transaction.
const batchSize = 2000

// Run ingests every *.csv under rawDir into the serving store. Player rows
// only (rows without a player id are team totals and are skipped); the
// opponent code is derived from the home/away columns.
func Run(ctx context.Context, st *store.Store, rawDir string, logger *slog.Logger) (*Result, error) {
	files, err := listCSVs(rawDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files in %s", rawDir)
	}

	result := &Result{Files: files}

	if _, err := st.DB().ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("create serving schema: %w", err)
	}

	loader := newLoader(st)
	for _, f := range files {
		logger.Info("ingesting file", "file", filepath.Base(f))
		if err := loader.loadFile(ctx, f, result); err != nil {
			result.AddErrorf("%s: %v", filepath.Base(f), err)
		}
	}
	if err := loader.flush(ctx); err != nil {
		return nil, err
	}
	if err := loader.writeDimensions(ctx, result); err != nil {
		return nil, err
	}

	result.BoxScores = loader.rowCount
	return result, nil
}

func listCSVs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read raw dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// gameInfo accumulates one row per game for the games dimension.
type gameInfo struct {
	date       string
	season     *int64
	seasonType *string
	home       *string
	away       *string
}

// loader batches box-score inserts and collects the dimension tables in
// memory; the source data is one denormalized row per player-game.
type loader struct {
	st       *store.Store
	players  map[int64]string
	teams    map[string]bool
	games    map[string]gameInfo
	pending  [][]any
	rowCount int
	insert   string
}

func newLoader(st *store.Store) *loader {
	cols := []string{"game_id", "player_id", "player_name", "team_abbr", "opponent_abbr", "game_date", "season", "season_type"}
	for _, sc := range statColumns {
		cols = append(cols, sc.col)
	}
	cols = append(cols, "win")
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return &loader{
		st:      st,
		players: make(map[int64]string),
		teams:   make(map[string]bool),
		games:   make(map[string]gameInfo),
		insert: fmt.Sprintf("INSERT INTO box_scores (%s) VALUES (%s)",
			strings.Join(cols, ", "), ph),
	}
}

func (l *loader) loadFile(ctx context.Context, path string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"gameid", "date", "team", "home", "away", "player", "playerid"} {
		if _, ok := idx[required]; !ok {
			return fmt.Errorf("missing required column %q", required)
		}
	}

	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.AddErrorf("%s line %d: %v", filepath.Base(path), line, err)
			continue
		}
		if err := l.addRow(ctx, rec, idx); err != nil {
			result.AddErrorf("%s line %d: %v", filepath.Base(path), line, err)
		}
	}
	return nil
}

func (l *loader) addRow(ctx context.Context, rec []string, idx map[string]int) error {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	// Rows without a player id are team totals; only player rows are kept.
	pidRaw := field("playerid")
	if pidRaw == "" {
		return nil
	}
	pid, err := strconv.ParseInt(pidRaw, 10, 64)
	if err != nil {
		return fmt.Errorf("bad playerid %q", pidRaw)
	}

	gameID := field("gameid")
	date := field("date")
	team := field("team")
	home := field("home")
	away := field("away")
	playerName := field("player")

	var opponent *string
	switch team {
	case home:
		opponent = &away
	case away:
		opponent = &home
	}

	l.players[pid] = playerName
	for _, abbr := range []string{team, home, away} {
		if abbr != "" {
			l.teams[abbr] = true
		}
	}
	if opponent != nil && *opponent != "" {
		l.teams[*opponent] = true
	}

	season := parseIntField(field("season"))
	seasonType := nullString(field("type"))
	if _, seen := l.games[gameID]; !seen {
		l.games[gameID] = gameInfo{
			date:       date,
			season:     season,
			seasonType: seasonType,
			home:       nullString(home),
			away:       nullString(away),
		}
	}

	args := []any{gameID, pid, playerName, nullString(team), opponent, date, season, seasonType}
	for _, sc := range statColumns {
		args = append(args, parseFloatField(field(sc.csvHeader)))
	}
	args = append(args, parseIntField(field("win")))

	l.pending = append(l.pending, args)
	l.rowCount++
	if len(l.pending) >= batchSize {
		return l.flush(ctx)
	}
	return nil
}

// flush writes the pending box-score batch in one transaction.
func (l *loader) flush(ctx context.Context) error {
	if len(l.pending) == 0 {
		return nil
	}
	tx, err := l.st.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, l.insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	for _, args := range l.pending {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("insert box score: %w", err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	l.pending = l.pending[:0]
	return nil
}

// writeDimensions inserts the deduplicated players, teams, and games
// collected while streaming the fact rows.
func (l *loader) writeDimensions(ctx context.Context, result *Result) error {
	tx, err := l.st.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dimensions: %w", err)
	}
	defer tx.Rollback()

	for pid, name := range l.players {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO players (player_id, player_name) VALUES (?, ?)", pid, name); err != nil {
			return fmt.Errorf("insert player %d: %w", pid, err)
		}
	}
	for abbr := range l.teams {
		if _, err := tx.ExecContext(ctx, "INSERT INTO teams (abbr) VALUES (?)", abbr); err != nil {
			return fmt.Errorf("insert team %s: %w", abbr, err)
		}
	}
	for id, g := range l.games {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO games (game_id, game_date, season, season_type, home_team_abbr, away_team_abbr)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, g.date, g.season, g.seasonType, g.home, g.away); err != nil {
			return fmt.Errorf("insert game %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dimensions: %w", err)
	}

	result.Players = len(l.players)
	result.Teams = len(l.teams)
	result.Games = len(l.games)
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseFloatField(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntField(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// "win" sometimes arrives as "1.0"
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			n := int64(f)
			return &n
		}
		return nil
	}
	return &v
}
