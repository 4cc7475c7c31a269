package song

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/rikka-bot/rikka-data/internal/config"
)

// SyncResult tracks counts and errors from a catalog sync run.
type SyncResult struct {
	SongsUpserted   int
	AliasesUpserted int
	Errors          []string
}

// AddErrorf records a formatted error message.
func (r *SyncResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the sync run.
func (r *SyncResult) Summary() string {
	return fmt.Sprintf("songs=%d aliases=%d errors=%d",
		r.SongsUpserted, r.AliasesUpserted, len(r.Errors))
}

// Syncer refreshes the local catalog from the LXNS song and alias lists.
type Syncer struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	pool       *pgxpool.Pool
	logger     *slog.Logger
}

// NewSyncer creates a catalog syncer against the given LXNS API root.
func NewSyncer(baseURL string, pool *pgxpool.Pool, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
		pool:       pool,
		logger:     logger,
	}
}

// --------------------------------------------------------------------------
// Upstream list shapes
// --------------------------------------------------------------------------

type songListRaw struct {
	Songs []songRaw `json:"songs"`
}

type songRaw struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Artist       string          `json:"artist"`
	Genre        string          `json:"genre"`
	BPM          int             `json:"bpm"`
	Version      int             `json:"version"`
	Difficulties json.RawMessage `json:"difficulties"`
}

type aliasListRaw struct {
	Aliases []aliasRaw `json:"aliases"`
}

type aliasRaw struct {
	SongID  int      `json:"song_id"`
	Aliases []string `json:"aliases"`
}

func (s *Syncer) fetch(ctx context.Context, path string, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LXNS %s returned %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SyncSongs pulls the complete song list and upserts it into the catalog.
func (s *Syncer) SyncSongs(ctx context.Context) SyncResult {
	var result SyncResult

	s.logger.Info("Fetching LXNS song list...")
	var list songListRaw
	if err := s.fetch(ctx, "/song/list", &list); err != nil {
		result.AddErrorf("fetch song list: %v", err)
		return result
	}

	s.logger.Info("Upserting songs...", "count", len(list.Songs))
	for _, raw := range list.Songs {
		if err := s.upsertSong(ctx, raw); err != nil {
			result.AddErrorf("upsert song %d: %v", raw.ID, err)
			continue
		}
		result.SongsUpserted++
		if result.SongsUpserted%200 == 0 {
			s.logger.Info("song sync progress", "processed", result.SongsUpserted)
		}
	}

	s.logger.Info("Song sync complete", "summary", result.Summary())
	return result
}

// SyncAliases pulls the community alias list and upserts it.
func (s *Syncer) SyncAliases(ctx context.Context) SyncResult {
	var result SyncResult

	s.logger.Info("Fetching LXNS alias list...")
	var list aliasListRaw
	if err := s.fetch(ctx, "/alias/list", &list); err != nil {
		result.AddErrorf("fetch alias list: %v", err)
		return result
	}

	for _, entry := range list.Aliases {
		for _, alias := range entry.Aliases {
			if err := s.upsertAlias(ctx, entry.SongID, alias); err != nil {
				result.AddErrorf("upsert alias %q for song %d: %v", alias, entry.SongID, err)
				continue
			}
			result.AliasesUpserted++
		}
	}

	s.logger.Info("Alias sync complete", "summary", result.Summary())
	return result
}

func (s *Syncer) upsertSong(ctx context.Context, raw songRaw) error {
	difficulties := raw.Difficulties
	if difficulties == nil {
		difficulties = []byte("{}")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.SongsTable+` (id, title, artist, genre, bpm, version, difficulties)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			genre = EXCLUDED.genre,
			bpm = EXCLUDED.bpm,
			version = EXCLUDED.version,
			difficulties = EXCLUDED.difficulties,
			updated_at = NOW()`,
		raw.ID, raw.Title, raw.Artist, raw.Genre, raw.BPM, raw.Version, difficulties,
	)
	return err
}

func (s *Syncer) upsertAlias(ctx context.Context, songID int, alias string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.AliasesTable+` (song_id, alias)
		VALUES ($1,$2)
		ON CONFLICT (song_id, alias) DO NOTHING`,
		songID, alias,
	)
	return err
}
