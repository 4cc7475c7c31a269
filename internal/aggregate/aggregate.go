// Package aggregate bridges provider capability gaps. It resolves the
// provider for a user, reconstructs ranking views a provider cannot serve
// natively, and fills in rating totals a provider omits.
//
// Only ErrCapability is handled here; every other provider error propagates
// to the caller untouched. No network call is ever retried.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

// Best-scores view bounds: top 35 from the legacy catalog plus top 15 from
// the current catalog.
const (
	BestLegacyCount  = 35
	BestCurrentCount = 15
)

// Catalog answers which catalog era a song belongs to. Implemented by the
// song store; songs missing from the local catalog count as current-era,
// since an unindexed song is far more often newer than the last sync than a
// forgotten legacy title.
type Catalog interface {
	CurrentEra(ctx context.Context, songID int) (bool, error)
}

// Service exposes the user-facing score operations to command handlers. Each
// call resolves the user's provider, issues the upstream requests, and
// returns the normalized model or a typed error.
type Service struct {
	resolver *provider.Resolver
	catalog  Catalog
	logger   *slog.Logger
}

// NewService creates the aggregation service.
func NewService(resolver *provider.Resolver, catalog Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{resolver: resolver, catalog: catalog, logger: logger}
}

// PlayerInfo fetches the user's profile from their resolved provider.
func (s *Service) PlayerInfo(ctx context.Context, userID string) (*mai.PlayerInfo, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sel.Provider.FetchPlayerInfo(ctx, sel.Identity)
}

// BestScores fetches the user's best-scores view, filling totals when the
// provider did not supply them.
func (s *Service) BestScores(ctx context.Context, userID string) (*mai.BestScores, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	bests, err := sel.Provider.FetchBestScores(ctx, sel.Identity)
	if err != nil {
		return nil, err
	}
	EnsureTotals(bests)
	return bests, nil
}

// AllPerfectScores fetches the AP-only best-scores view. When the provider
// has no native endpoint, the view is reconstructed: fetch the complete
// score list, keep the two top full-combo tiers, and re-run the same
// top-N-per-era selection the native endpoint uses.
func (s *Service) AllPerfectScores(ctx context.Context, userID string) (*mai.BestScores, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	bests, err := sel.Provider.FetchAllPerfectScores(ctx, sel.Identity)
	if err == nil {
		EnsureTotals(bests)
		return bests, nil
	}
	if !errors.Is(err, provider.ErrCapability) {
		return nil, err
	}

	s.logger.Debug("no native AP endpoint, rebuilding from full score list",
		"provider", sel.Provider.Name(), "user_id", userID)

	all, err := sel.Provider.FetchScoresFiltered(ctx, sel.Identity, provider.ScoreFilter{})
	if err != nil {
		return nil, fmt.Errorf("AP fallback: %w", err)
	}
	return s.TopPerEra(ctx, FilterAllPerfect(all))
}

// RecentScores fetches the user's most recent plays.
func (s *Service) RecentScores(ctx context.Context, userID string) ([]mai.Score, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sel.Provider.FetchRecentScores(ctx, sel.Identity)
}

// SongScores fetches all difficulty records for one song and chart type.
func (s *Service) SongScores(ctx context.Context, userID string, songID int, chart mai.ChartType) ([]mai.Score, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sel.Provider.FetchSongScores(ctx, sel.Identity, songID, chart)
}

// ScoresFiltered fetches the user's full score list narrowed by filter.
func (s *Service) ScoresFiltered(ctx context.Context, userID string, filter provider.ScoreFilter) ([]mai.Score, error) {
	sel, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sel.Provider.FetchScoresFiltered(ctx, sel.Identity, filter)
}

// --------------------------------------------------------------------------
// View reconstruction
// --------------------------------------------------------------------------

// FilterAllPerfect keeps only the two top full-combo tiers (AP, AP+).
func FilterAllPerfect(scores []mai.Score) []mai.Score {
	out := make([]mai.Score, 0, len(scores))
	for _, s := range scores {
		if s.FC.AllPerfect() {
			out = append(out, s)
		}
	}
	return out
}

// TopPerEra buckets scores into legacy/current catalog eras via the song
// catalog and keeps the top entries of each, producing a view with the same
// shape and bounds as a provider's native best-scores endpoint. Totals are
// computed by summation.
func (s *Service) TopPerEra(ctx context.Context, scores []mai.Score) (*mai.BestScores, error) {
	var legacy, current []mai.Score
	for _, sc := range scores {
		isCurrent, err := s.catalog.CurrentEra(ctx, sc.SongID)
		if err != nil {
			return nil, fmt.Errorf("era lookup for song %d: %w", sc.SongID, err)
		}
		if isCurrent {
			current = append(current, sc)
		} else {
			legacy = append(legacy, sc)
		}
	}

	legacy = topByRating(legacy, BestLegacyCount)
	current = topByRating(current, BestCurrentCount)

	bests := &mai.BestScores{Standard: legacy, DX: current}
	EnsureTotals(bests)
	return bests, nil
}

// topByRating sorts descending by rating contribution (achievement breaks
// ties) and truncates to n.
func topByRating(scores []mai.Score, n int) []mai.Score {
	sorted := append([]mai.Score(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Achievement > sorted[j].Achievement
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// EnsureTotals fills per-era totals by summation when the provider did not
// supply them. A provider-supplied total is authoritative and never
// recomputed: some providers' rating formulas include factors (bonus
// collectibles) not derivable from the score list, so the summed value is a
// documented approximation used only when nothing better exists.
func EnsureTotals(b *mai.BestScores) {
	if b.TotalsProvided {
		return
	}
	b.StandardTotal = SumRatings(b.Standard)
	b.DXTotal = SumRatings(b.DX)
}

// SumRatings returns the exact sum of rating contributions.
func SumRatings(scores []mai.Score) float64 {
	var total float64
	for _, s := range scores {
		total += s.Rating
	}
	return total
}
