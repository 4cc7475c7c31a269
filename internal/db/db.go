// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rikka-bot/rikka-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and sync layers
// use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Bindings
		"binding_get": `SELECT user_id, friend_code, lxns_api_key,
			diving_fish_import_token, diving_fish_username, default_provider
			FROM ` + config.BindingsTable + ` WHERE user_id = $1`,

		// Songs
		"song_by_id": `SELECT id, title, artist, genre, bpm, version, difficulties
			FROM ` + config.SongsTable + ` WHERE id = $1`,
		"song_version": `SELECT version FROM ` + config.SongsTable + ` WHERE id = $1`,
		"song_by_title": `SELECT id, title, artist, genre, bpm, version, difficulties
			FROM ` + config.SongsTable + ` WHERE lower(title) = lower($1)`,
		"song_id_by_alias": `SELECT song_id FROM ` + config.AliasesTable + ` WHERE lower(alias) = lower($1) LIMIT 1`,
		"song_aliases": `SELECT alias FROM ` + config.AliasesTable + ` WHERE song_id = $1 ORDER BY alias`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
