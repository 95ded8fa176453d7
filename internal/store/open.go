package store

import (
	"context"
	"fmt"

	"github.com/courtsight/statline/internal/config"
)

// Open connects to whichever backend the configuration selects.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.DBDriver)
	}
}
