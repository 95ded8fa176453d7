package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsight/statline/internal/cache"
	"github.com/courtsight/statline/internal/config"
	"github.com/courtsight/statline/internal/engine"
	"github.com/courtsight/statline/internal/store"
)

const testSchema = `
CREATE TABLE players (
	player_id INTEGER PRIMARY KEY,
	player_name TEXT NOT NULL
);
CREATE TABLE box_scores (
	player_id INTEGER,
	player_name TEXT,
	team_abbr TEXT,
	opponent_abbr TEXT,
	game_date TEXT,
	season_type TEXT,
	MIN REAL,
	PTS REAL, REB REAL, AST REAL, STL REAL, BLK REAL, TOV REAL,
	FG_PCT REAL, FG3_PCT REAL, FT_PCT REAL,
	FGM REAL, FGA REAL, FG3M REAL, FG3A REAL, FTM REAL, FTA REAL
);
INSERT INTO players (player_id, player_name) VALUES (1, 'LeBron James');
INSERT INTO box_scores (player_id, player_name, team_abbr, opponent_abbr, game_date, season_type, PTS, REB)
VALUES
	(1, 'LeBron James', 'LAL', 'BOS', '2024-01-01', 'Regular Season', 20, 8),
	(1, 'LeBron James', 'LAL', 'BOS', '2024-01-03', 'Regular Season', 30, 10);
`

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	ctx := context.Background()

	st, err := store.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.DB().ExecContext(ctx, testSchema)
	require.NoError(t, err)

	cfg := &config.Config{GamesDefaultLimit: 25}
	return New(engine.New(st), st, cache.New(true), cfg)
}

func TestQueryEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query?text=LeBron+James+last+2+games", nil)
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Contains(t, rec.Body.String(), "PPG 25.0")
}

func TestQueryEndpointCacheHitAndETag(t *testing.T) {
	h := newTestHandler(t)
	url := "/api/v1/query?text=LeBron+James+last+2+games"

	rec := httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest(http.MethodGet, url, nil))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.Query(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestQueryEndpointMissingText(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest(http.MethodGet, "/api/v1/query", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TEXT")
}

func TestQueryEndpointPlayerNotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest(http.MethodGet, "/api/v1/query?text=Zz+Qq", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAYER_NOT_FOUND")
}

func TestGamesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Games(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games?text=LeBron+James+career&limit=1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var result engine.GamesResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "LeBron James", result.Player)
	assert.True(t, result.Career)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2024-01-03", result.Rows[0].GameDate)
}

func TestGamesEndpointInvalidLimit(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Games(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games?text=LeBron&limit=ten", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LIMIT")
}

func TestSuggestEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Suggest(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suggest?player=lebron", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var result engine.SuggestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []string{"LeBron James"}, result.Players)
	require.NotEmpty(t, result.Ideas)
	assert.Equal(t, "LeBron James career playoffs", result.Ideas[0])
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	h.HealthCheckDB(rec, httptest.NewRequest(http.MethodGet, "/health/db", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "connected")

	rec = httptest.NewRecorder()
	h.HealthCheckCache(rec, httptest.NewRequest(http.MethodGet, "/health/cache", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sqlite")
}
