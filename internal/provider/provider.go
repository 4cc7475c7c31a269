// Package provider defines the uniform contract all score-tracker clients
// implement, the error taxonomy they report through, and the resolver that
// picks a provider and credential for a user.
//
// Each external tracker has its own sub-package (lxns, divingfish) that
// translates its REST API into the canonical internal/mai types. Callers
// never see vendor response shapes.
package provider

import (
	"context"
	"fmt"

	"github.com/rikka-bot/rikka-data/internal/mai"
)

// Provider names as stored in user bindings.
const (
	NameLXNS       = "lxns"
	NameDivingFish = "diving-fish"
)

// Identity addresses a player on a provider. Exactly one of FriendCode,
// Username, or AccountID must be set; Validate enforces this.
//
// The token fields are credentials carried alongside the address: PersonalToken
// is the player's own LXNS API key, ImportToken the DivingFish import token.
// Providers use them only for operations that need elevated access.
type Identity struct {
	FriendCode string // provider-issued public player identifier
	Username   string // provider-local display username
	AccountID  string // chat-platform-native account id

	PersonalToken string
	ImportToken   string
}

// Validate checks that exactly one addressing field is set.
func (id Identity) Validate() error {
	n := 0
	if id.FriendCode != "" {
		n++
	}
	if id.Username != "" {
		n++
	}
	if id.AccountID != "" {
		n++
	}
	if n != 1 {
		return fmt.Errorf("identity needs exactly one of friend_code, username, account_id (got %d): %w", n, ErrInvalidArgument)
	}
	return nil
}

// ScoreFilter narrows a full score list. Zero values mean "no constraint".
type ScoreFilter struct {
	Level          string  // display level, e.g. "13+"
	MinAchievement float64 // inclusive lower bound
}

// Match reports whether a score satisfies the filter.
func (f ScoreFilter) Match(s mai.Score) bool {
	if f.Level != "" && s.Level != f.Level {
		return false
	}
	if f.MinAchievement > 0 && s.Achievement < f.MinAchievement {
		return false
	}
	return true
}

// ScoreProvider is the uniform operation set every tracker client implements.
// Operations a provider cannot serve return ErrCapability; every
// implementation keeps the same parameter order.
//
// Instances hold a shared HTTP connection pool that is safe for concurrent
// use and must be released with Close at shutdown.
type ScoreProvider interface {
	// Name returns the provider's binding name (NameLXNS, NameDivingFish).
	Name() string

	// FetchPlayerInfo returns the player's public profile.
	FetchPlayerInfo(ctx context.Context, id Identity) (*mai.PlayerInfo, error)

	// FetchBestScores returns the top scores across both catalog eras, as
	// defined by the upstream service.
	FetchBestScores(ctx context.Context, id Identity) (*mai.BestScores, error)

	// FetchAllPerfectScores returns the best-scores view restricted to
	// AP/AP+ plays. Providers without a native endpoint return
	// ErrCapability; the aggregation layer reconstructs the view from the
	// full score list.
	FetchAllPerfectScores(ctx context.Context, id Identity) (*mai.BestScores, error)

	// FetchRecentScores returns the most recent play records. Optional.
	FetchRecentScores(ctx context.Context, id Identity) ([]mai.Score, error)

	// FetchSongScores returns all difficulty records for one song. Optional.
	FetchSongScores(ctx context.Context, id Identity, songID int, chart mai.ChartType) ([]mai.Score, error)

	// FetchScoresFiltered returns the full score list narrowed by filter.
	// Optional; a zero filter returns everything.
	FetchScoresFiltered(ctx context.Context, id Identity, filter ScoreFilter) ([]mai.Score, error)

	// Close releases the provider's connection resources.
	Close()
}

// Registry holds the provider instances constructed once at process start.
// It replaces ad-hoc singletons: handlers receive it by reference.
type Registry struct {
	providers map[string]ScoreProvider
	order     []string
}

// NewRegistry builds a registry from the given providers, preserving order.
func NewRegistry(providers ...ScoreProvider) *Registry {
	r := &Registry{providers: make(map[string]ScoreProvider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
		r.order = append(r.order, p.Name())
	}
	return r
}

// Get returns the named provider, or nil if not registered.
func (r *Registry) Get(name string) ScoreProvider {
	return r.providers[name]
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Close releases every registered provider's connection resources.
func (r *Registry) Close() {
	for _, name := range r.order {
		r.providers[name].Close()
	}
}
