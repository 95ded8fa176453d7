// Package store provides read access to the serving tables (players,
// teams, games, box_scores) through database/sql, hiding the dialect
// differences between the two supported backends: a local SQLite serving
// file and a hosted Postgres database.
//
// Queries are written once with named @param placeholders; the store
// rewrites them to the dialect's positional form and binds the parameters
// positionally.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "modernc.org/sqlite"             // pure-Go sqlite driver
)

// Dialect selects placeholder style and introspection queries.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Store wraps a *sql.DB with dialect-aware helpers.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (or creates) a SQLite database file and verifies
// connectivity.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// The sqlite driver serializes writes itself; a single connection
	// avoids table-lock errors between the ETL's transactions.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &Store{db: db, dialect: DialectSQLite}, nil
}

// OpenPostgres connects to a Postgres database via the pgx stdlib driver
// and verifies connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db, dialect: DialectPostgres}, nil
}

// Dialect returns the backend dialect.
func (s *Store) Dialect() Dialect { return s.dialect }

// DB exposes the underlying handle for transactions (ETL use).
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the underlying connections.
func (s *Store) Close() error { return s.db.Close() }

// HealthCheck runs a trivial query to verify the database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	var n int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&n)
}

var namedParamRe = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

// BindNamed rewrites @name placeholders to the dialect's positional form
// and returns the argument list in placeholder order. Unknown parameter
// names are an error; repeated names are bound once per occurrence.
func (s *Store) BindNamed(query string, params map[string]any) (string, []any, error) {
	var args []any
	var missing string
	n := 0
	rewritten := namedParamRe.ReplaceAllStringFunc(query, func(m string) string {
		name := m[1:]
		v, ok := params[name]
		if !ok && missing == "" {
			missing = name
		}
		args = append(args, v)
		n++
		if s.dialect == DialectPostgres {
			return fmt.Sprintf("$%d", n)
		}
		return "?"
	})
	if missing != "" {
		return "", nil, fmt.Errorf("bind query: no value for parameter @%s", missing)
	}
	return rewritten, args, nil
}

// Query executes a named-parameter query and returns the rows.
func (s *Store) Query(ctx context.Context, query string, params map[string]any) (*sql.Rows, error) {
	q, args, err := s.BindNamed(query, params)
	if err != nil {
		return nil, err
	}
	return s.db.QueryContext(ctx, q, args...)
}

// QueryRow executes a named-parameter query expected to return one row.
func (s *Store) QueryRow(ctx context.Context, query string, params map[string]any) (*sql.Row, error) {
	q, args, err := s.BindNamed(query, params)
	if err != nil {
		return nil, err
	}
	return s.db.QueryRowContext(ctx, q, args...), nil
}

// Exec executes a named-parameter statement (ETL use).
func (s *Store) Exec(ctx context.Context, query string, params map[string]any) error {
	q, args, err := s.BindNamed(query, params)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Columns lists the column names of a table, lower-cased. This is the
// capability probe the query builder uses to adapt season-type filtering
// to whatever schema the store actually has.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	var rows *sql.Rows
	var err error
	switch s.dialect {
	case DialectPostgres:
		rows, err = s.db.QueryContext(ctx,
			`SELECT column_name FROM information_schema.columns WHERE table_name = $1`, table)
	default:
		// PRAGMA takes no bind parameters; the identifier is validated above.
		rows, err = s.db.QueryContext(ctx, fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", table))
	}
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols = append(cols, strings.ToLower(name))
	}
	return cols, rows.Err()
}
