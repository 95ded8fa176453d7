// Command statline is the Statline CLI.
//
// Usage:
//
//	statline etl --raw data/raw
//	statline query "LeBron vs BOS last 10 games"
//	statline games "Curry career playoffs" --limit 20
//	statline suggest curry
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/courtsight/statline/internal/config"
	"github.com/courtsight/statline/internal/engine"
	"github.com/courtsight/statline/internal/etl"
	"github.com/courtsight/statline/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "statline",
		Short:         "Natural-language basketball statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(etlCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(gamesCmd())
	root.AddCommand(suggestCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// etl command
// --------------------------------------------------------------------------

func etlCmd() *cobra.Command {
	var rawDir string
	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Load raw CSV box scores into the serving database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				dir := rawDir
				if dir == "" {
					dir = cfg.RawDataDir
				}
				start := time.Now()
				result, err := etl.Run(ctx, st, dir, logger)
				if err != nil {
					return err
				}
				logger.Info("ETL finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("etl error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rawDir, "raw", "", "Directory of raw CSV files (default from STATLINE_RAW_DIR)")
	return cmd
}

// --------------------------------------------------------------------------
// query / games / suggest commands
// --------------------------------------------------------------------------

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Answer a stat question with a summary line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				out, err := engine.New(st).Summarize(ctx, joinArgs(args))
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			})
		},
	}
}

func gamesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "games <text>",
		Short: "List matching games, newest first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				result, err := engine.New(st).ListGames(ctx, joinArgs(args), limit)
				if err != nil {
					return err
				}
				printGames(result)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", engine.DefaultGamesLimit, "Maximum rows (an explicit 'last N' in the text wins)")
	return cmd
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <fragment>",
		Short: "Autocomplete player names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				result, err := engine.New(st).Suggest(ctx, args[0])
				if err != nil {
					return err
				}
				for _, p := range result.Players {
					fmt.Println(p)
				}
				if len(result.Ideas) > 0 {
					fmt.Println("\nTry:")
					for _, idea := range result.Ideas {
						fmt.Printf("  %s\n", idea)
					}
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

// withStore loads config, opens the configured store, and runs fn with a
// signal-aware context.
func withStore(fn func(ctx context.Context, cfg *config.Config, st *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, cfg, st)
}

func joinArgs(args []string) string {
	text := ""
	for i, a := range args {
		if i > 0 {
			text += " "
		}
		text += a
	}
	return text
}

func printGames(result *engine.GamesResult) {
	span := fmt.Sprintf("last %d", len(result.Rows))
	if result.Career {
		span = "career"
	}
	fmt.Printf("%s (%s):\n", result.Player, span)
	fmt.Println("DATE        OPP  TEAM   MIN   PTS  REB  AST  STL  BLK  TOV   FG%    3P%    FT%")
	for _, g := range result.Rows {
		fmt.Printf("%-11s %-4s %-4s %5s %5s %4s %4s %4s %4s %4s %6s %6s %6s\n",
			g.GameDate, g.Opponent, g.Team,
			cell(g.Minutes), cell(g.Points), cell(g.Rebounds), cell(g.Assists),
			cell(g.Steals), cell(g.Blocks), cell(g.Turnovers),
			cell(g.FGPct), cell(g.FG3Pct), cell(g.FTPct))
	}
}

func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
