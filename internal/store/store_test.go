package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestBindNamedSQLite(t *testing.T) {
	s := &Store{dialect: DialectSQLite}

	q, args, err := s.BindNamed(
		"SELECT * FROM t WHERE a = @a AND b = @b AND a2 = @a",
		map[string]any{"a": 1, "b": "x"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ? AND a2 = ?", q)
	assert.Equal(t, []any{1, "x", 1}, args)
}

func TestBindNamedPostgres(t *testing.T) {
	s := &Store{dialect: DialectPostgres}

	q, args, err := s.BindNamed(
		"SELECT * FROM t WHERE a = @a AND b = @b",
		map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", q)
	assert.Equal(t, []any{1, 2}, args)
}

func TestBindNamedMissingParam(t *testing.T) {
	s := &Store{dialect: DialectSQLite}

	_, _, err := s.BindNamed("SELECT * FROM t WHERE a = @a", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@a")
}

func TestBindNamedNoParams(t *testing.T) {
	s := &Store{dialect: DialectSQLite}

	q, args, err := s.BindNamed("SELECT 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", q)
	assert.Empty(t, args)
}

func TestColumns(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.DB().ExecContext(ctx,
		`CREATE TABLE box_scores (player_id INTEGER, Game_Date TEXT, PTS REAL)`)
	require.NoError(t, err)

	cols, err := st.Columns(ctx, "box_scores")
	require.NoError(t, err)
	assert.Equal(t, []string{"player_id", "game_date", "pts"}, cols)
}

func TestColumnsMissingTable(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	cols, err := st.Columns(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestColumnsRejectsBadIdentifier(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Columns(context.Background(), "box_scores; DROP TABLE players")
	assert.Error(t, err)
}

func TestQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.DB().ExecContext(ctx, `CREATE TABLE t (id INTEGER, name TEXT)`)
	require.NoError(t, err)
	require.NoError(t, st.Exec(ctx,
		"INSERT INTO t (id, name) VALUES (@id, @name)",
		map[string]any{"id": 1, "name": "alpha"}))

	row, err := st.QueryRow(ctx, "SELECT name FROM t WHERE id = @id", map[string]any{"id": 1})
	require.NoError(t, err)
	var name string
	require.NoError(t, row.Scan(&name))
	assert.Equal(t, "alpha", name)
}

func TestHealthCheck(t *testing.T) {
	st := openTestStore(t)
	assert.NoError(t, st.HealthCheck(context.Background()))
	assert.Equal(t, DialectSQLite, st.Dialect())
}
