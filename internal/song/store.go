// Package song provides the local song catalog: metadata and alias lookup
// for chat commands, and the catalog-era split the aggregation layer uses to
// bucket reconstructed best-scores views.
package song

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSongNotFound is returned when no catalog entry matches a lookup.
var ErrSongNotFound = errors.New("song not found")

// Song is one catalog entry. Difficulties holds the per-chart difficulty
// lists as stored (JSONB), opaque to this layer.
type Song struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Artist       string          `json:"artist"`
	Genre        string          `json:"genre"`
	BPM          int             `json:"bpm"`
	Version      int             `json:"version"`
	Difficulties json.RawMessage `json:"difficulties"`
	Aliases      []string        `json:"aliases,omitempty"`
}

// Store reads the song catalog from Postgres.
type Store struct {
	pool *pgxpool.Pool

	// currentVersion is the minimum song version counted as the current
	// catalog era.
	currentVersion int
}

// NewStore creates a song store. currentVersion configures the era split.
func NewStore(pool *pgxpool.Pool, currentVersion int) *Store {
	return &Store{pool: pool, currentVersion: currentVersion}
}

// GetByID returns one song with its aliases.
func (s *Store) GetByID(ctx context.Context, id int) (*Song, error) {
	song, err := s.scanSong(s.pool.QueryRow(ctx, "song_by_id", id))
	if err != nil {
		return nil, err
	}
	if err := s.loadAliases(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// Lookup resolves a query string to a song: by exact title first, then by
// alias.
func (s *Store) Lookup(ctx context.Context, query string) (*Song, error) {
	song, err := s.scanSong(s.pool.QueryRow(ctx, "song_by_title", query))
	if err == nil {
		if err := s.loadAliases(ctx, song); err != nil {
			return nil, err
		}
		return song, nil
	}
	if !errors.Is(err, ErrSongNotFound) {
		return nil, err
	}

	var songID int
	err = s.pool.QueryRow(ctx, "song_id_by_alias", query).Scan(&songID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no song or alias matches %q: %w", query, ErrSongNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("alias lookup %q: %w", query, err)
	}
	return s.GetByID(ctx, songID)
}

// CurrentEra reports whether a song belongs to the current catalog era.
// Songs missing from the local catalog count as current-era: a missing row
// far more often means a song newer than the last sync than an unindexed
// legacy title.
func (s *Store) CurrentEra(ctx context.Context, songID int) (bool, error) {
	var version int
	err := s.pool.QueryRow(ctx, "song_version", songID).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("song version %d: %w", songID, err)
	}
	return version >= s.currentVersion, nil
}

func (s *Store) scanSong(row pgx.Row) (*Song, error) {
	var song Song
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Genre,
		&song.BPM, &song.Version, &song.Difficulties)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan song: %w", err)
	}
	return &song, nil
}

func (s *Store) loadAliases(ctx context.Context, song *Song) error {
	rows, err := s.pool.Query(ctx, "song_aliases", song.ID)
	if err != nil {
		return fmt.Errorf("aliases for song %d: %w", song.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return fmt.Errorf("scan alias: %w", err)
		}
		song.Aliases = append(song.Aliases, alias)
	}
	return rows.Err()
}
