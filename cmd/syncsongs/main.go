// Command syncsongs refreshes the local song catalog from LXNS.
//
// Usage:
//
//	rikka-syncsongs songs
//	rikka-syncsongs aliases
//	rikka-syncsongs all
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rikka-bot/rikka-data/internal/config"
	"github.com/rikka-bot/rikka-data/internal/db"
	"github.com/rikka-bot/rikka-data/internal/song"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "rikka-syncsongs",
		Short: "Song catalog sync CLI",
	}

	root.AddCommand(songsCmd())
	root.AddCommand(aliasesCmd())
	root.AddCommand(allCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func songsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "songs",
		Short: "Sync the song list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, syncer *song.Syncer) song.SyncResult {
				return syncer.SyncSongs(ctx)
			})
		},
	}
}

func aliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "Sync the song alias list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, syncer *song.Syncer) song.SyncResult {
				return syncer.SyncAliases(ctx)
			})
		},
	}
}

func allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Sync songs then aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, syncer *song.Syncer) song.SyncResult {
				result := syncer.SyncSongs(ctx)
				aliases := syncer.SyncAliases(ctx)
				result.SongsUpserted += aliases.SongsUpserted
				result.AliasesUpserted += aliases.AliasesUpserted
				result.Errors = append(result.Errors, aliases.Errors...)
				return result
			})
		},
	}
}

func runSync(fn func(context.Context, *song.Syncer) song.SyncResult) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	syncer := song.NewSyncer(cfg.LXNSBaseURL, pool.Pool, logger)

	start := time.Now()
	result := fn(ctx, syncer)
	logger.Info("Sync finished",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("sync error", "error", e)
	}
	return nil
}
