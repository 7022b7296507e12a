// Command ingest is the Scoracle Baseball data CLI.
//
// Usage:
//
//	scoracle-baseball schema
//	scoracle-baseball load --dir ./lahman/core
//	scoracle-baseball franchises
//	scoracle-baseball team batting NYY --start 2019 --end 2021
//	scoracle-baseball team name NYY --year 1905
//	scoracle-baseball player id "Mike Trout"
//	scoracle-baseball player pitching ruthba01
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-baseball/internal/baseball"
	"github.com/albapepper/scoracle-baseball/internal/config"
	"github.com/albapepper/scoracle-baseball/internal/db"
	"github.com/albapepper/scoracle-baseball/internal/lahman"
	"github.com/albapepper/scoracle-baseball/internal/logging"
	"github.com/albapepper/scoracle-baseball/internal/provider/bref"
	"github.com/albapepper/scoracle-baseball/internal/table"
)

var logger = logging.NewSlogLogger()

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-baseball",
		Short:        "Scoracle Baseball data CLI",
		SilenceUsage: true,
	}

	root.AddCommand(schemaCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(franchisesCmd())
	root.AddCommand(teamCmd())
	root.AddCommand(playerCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schema / load commands
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the Lahman tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(nil, func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := lahman.CreateSchema(ctx, pool.Pool); err != nil {
					return err
				}
				logger.Info("Schema ready")
				return nil
			})
		},
	}
}

func loadCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load Lahman CSV files into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(nil, func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := lahman.CreateSchema(ctx, pool.Pool); err != nil {
					return err
				}
				start := time.Now()
				result := lahman.LoadDir(ctx, pool.Pool, dir, logger)
				logger.Info("Lahman load finished",
					"dir", dir,
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("load error", "error", e)
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d tables failed to load", len(result.Errors))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./lahman", "Directory holding the Lahman CSV files")
	return cmd
}

// --------------------------------------------------------------------------
// query commands
// --------------------------------------------------------------------------

func franchisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "franchises",
		Short: "List active franchises",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				return svc.Franchises(ctx)
			})
		},
	}
}

func teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team statistics and names",
	}
	cmd.AddCommand(teamStatsCmd("batting", (*baseball.Service).TeamBatting))
	cmd.AddCommand(teamStatsCmd("pitching", (*baseball.Service).TeamPitching))
	cmd.AddCommand(teamNameCmd())
	return cmd
}

type teamStatsFunc func(*baseball.Service, context.Context, string, int, int) (*table.Table, error)

func teamStatsCmd(kind string, fn teamStatsFunc) *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   kind + " <franchise-id>",
		Short: "Per-player team " + kind + " from Baseball-Reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				return fn(svc, ctx, args[0], start, end)
			})
		},
	}
	cmd.Flags().IntVar(&start, "start", time.Now().Year(), "First season")
	cmd.Flags().IntVar(&end, "end", 0, "Last season (default: --start)")
	return cmd
}

func teamNameCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "name <franchise-id>",
		Short: "Franchise name for a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				return svc.TeamName(ctx, args[0], year)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Season")
	return cmd
}

func playerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player lookups and career statistics",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "name <player-id>",
		Short: "Display name for a player id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				name, err := svc.PlayerName(ctx, args[0])
				return map[string]string{"name": name}, err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "id <first last>",
		Short: "Player id for a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				id, err := svc.PlayerID(ctx, name)
				return map[string]string{"id": id}, err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "batting <player-id>",
		Short: "Career batting lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				return svc.PlayerBatting(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pitching <player-id>",
		Short: "Career pitching lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(func(ctx context.Context, svc *baseball.Service) (any, error) {
				return svc.PlayerPitching(ctx, args[0])
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runDB handles config loading, DB connection, and context cancellation.
// stmts are prepared on every connection, so commands that create the
// schema pass nil.
func runDB(stmts map[string]string, fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})
	logger = logging.NewSlogLogger()

	pool, err := db.New(ctx, cfg, stmts)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// runService builds the same service the API serves and prints fn's result
// as indented JSON on stdout.
func runService(fn func(ctx context.Context, svc *baseball.Service) (any, error)) error {
	return runDB(lahman.Statements(), func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
		store := lahman.NewStore(pool.Pool)
		svc := baseball.NewService(baseball.Sources{
			Registry:   store,
			Franchises: store,
			Teams:      bref.NewClient(cfg.BRefBaseURL, cfg.BRefUserAgent, cfg.BRefRequestsPerMinute, cfg.BRefTimeout(), logger),
			Players:    store,
			People:     store,
		}, logger)

		v, err := fn(ctx, svc)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	})
}
