package engine

import (
	"context"
	"fmt"
	"strings"
)

// SuggestResult is the autocomplete payload: matching player names plus
// ready-to-run example questions for the top match.
type SuggestResult struct {
	Players []string `json:"players"`
	Ideas   []string `json:"ideas"`
}

// suggestLimit bounds the autocomplete candidate list.
const suggestLimit = 8

// Suggest returns up to eight player names containing the fragment
// (case-insensitive), ordered by name, with canned query ideas for the
// first match. An empty fragment yields an empty result.
func (e *Engine) Suggest(ctx context.Context, fragment string) (*SuggestResult, error) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	result := &SuggestResult{Players: []string{}, Ideas: []string{}}
	if fragment == "" {
		return result, nil
	}

	rows, err := e.store.Query(ctx, fmt.Sprintf(
		`SELECT player_name FROM players
		 WHERE lower(player_name) LIKE @q
		 ORDER BY player_name
		 LIMIT %d`, suggestLimit),
		map[string]any{"q": "%" + fragment + "%"})
	if err != nil {
		return nil, &QueryError{Op: "suggest query", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &QueryError{Op: "suggest query", Err: err}
		}
		result.Players = append(result.Players, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "suggest query", Err: err}
	}

	if len(result.Players) > 0 {
		top := result.Players[0]
		result.Ideas = []string{
			top + " career playoffs",
			top + " vs BOS last 10",
			top + " since 2018",
			top + " career 3P%",
		}
	}
	return result, nil
}
