// Package engine turns a free-text question into an answer: it parses the
// text, resolves the player, builds a filter plan, and runs the aggregate
// and detail queries against the serving store. Every request is processed
// statelessly; the engine holds only the store handle.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/courtsight/statline/internal/nlq"
	"github.com/courtsight/statline/internal/store"
)

// Engine answers natural-language stat questions against one store.
type Engine struct {
	store *store.Store
}

// New creates an Engine over the given store.
func New(st *store.Store) *Engine {
	return &Engine{store: st}
}

// Player is one canonical player record from the players dimension.
type Player struct {
	ID   int64  `json:"player_id"`
	Name string `json:"player_name"`
}

// maxCandidates bounds the fuzzy-match candidate list presented on
// ambiguity.
const maxCandidates = 6

// resolvePlayer maps a free-text name to exactly one stored player. An
// exact case-sensitive match short-circuits; otherwise every normalized
// token must appear as a case-insensitive substring of the stored name.
func (e *Engine) resolvePlayer(ctx context.Context, name string) (Player, error) {
	var p Player
	row, err := e.store.QueryRow(ctx,
		`SELECT player_id, player_name FROM players WHERE player_name = @name LIMIT 1`,
		map[string]any{"name": name})
	if err != nil {
		return Player{}, &QueryError{Op: "resolve player", Err: err}
	}
	switch err := row.Scan(&p.ID, &p.Name); {
	case err == nil:
		return p, nil
	case !errors.Is(err, sql.ErrNoRows):
		return Player{}, &QueryError{Op: "resolve player", Err: err}
	}

	tokens := nlq.NameTokens(name)
	if len(tokens) == 0 {
		return Player{}, ErrEmptyInput
	}

	conds := make([]string, len(tokens))
	params := make(map[string]any, len(tokens))
	for i, t := range tokens {
		key := fmt.Sprintf("t%d", i)
		conds[i] = fmt.Sprintf("lower(player_name) LIKE @%s", key)
		params[key] = "%" + t + "%"
	}

	rows, err := e.store.Query(ctx, fmt.Sprintf(
		`SELECT player_id, player_name FROM players WHERE %s ORDER BY player_name LIMIT %d`,
		strings.Join(conds, " AND "), maxCandidates), params)
	if err != nil {
		return Player{}, &QueryError{Op: "resolve player", Err: err}
	}
	defer rows.Close()

	var matches []Player
	for rows.Next() {
		var m Player
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return Player{}, &QueryError{Op: "resolve player", Err: err}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return Player{}, &QueryError{Op: "resolve player", Err: err}
	}

	switch len(matches) {
	case 0:
		return Player{}, &PlayerNotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return Player{}, &AmbiguousPlayerError{Name: name, Candidates: names}
	}
}
