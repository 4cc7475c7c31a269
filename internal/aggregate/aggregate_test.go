package aggregate

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rikka-bot/rikka-data/internal/binding"
	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

// fakeCatalog marks the listed song ids as current-era.
type fakeCatalog struct {
	current map[int]bool
	err     error
}

func (c *fakeCatalog) CurrentEra(ctx context.Context, songID int) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.current[songID], nil
}

// fakeProvider returns canned responses for the operations a test exercises.
type fakeProvider struct {
	bests    *mai.BestScores
	bestsErr error
	apBests  *mai.BestScores
	apErr    error
	all      []mai.Score
	allErr   error

	scoresFilteredCalls int
}

func (p *fakeProvider) Name() string { return provider.NameLXNS }

func (p *fakeProvider) FetchPlayerInfo(ctx context.Context, id provider.Identity) (*mai.PlayerInfo, error) {
	return &mai.PlayerInfo{Name: "P", Rating: 10000}, nil
}

func (p *fakeProvider) FetchBestScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	return p.bests, p.bestsErr
}

func (p *fakeProvider) FetchAllPerfectScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	return p.apBests, p.apErr
}

func (p *fakeProvider) FetchRecentScores(ctx context.Context, id provider.Identity) ([]mai.Score, error) {
	return nil, provider.ErrCapability
}

func (p *fakeProvider) FetchSongScores(ctx context.Context, id provider.Identity, songID int, chart mai.ChartType) ([]mai.Score, error) {
	return nil, provider.ErrCapability
}

func (p *fakeProvider) FetchScoresFiltered(ctx context.Context, id provider.Identity, filter provider.ScoreFilter) ([]mai.Score, error) {
	p.scoresFilteredCalls++
	return p.all, p.allErr
}

func (p *fakeProvider) Close() {}

// fakeStore always resolves to a stored LXNS friend code.
type fakeStore struct{}

func (fakeStore) Get(ctx context.Context, userID string) (*binding.Binding, error) {
	return &binding.Binding{UserID: userID, FriendCode: "123"}, nil
}

func (fakeStore) SetFriendCode(ctx context.Context, userID, friendCode string) error { return nil }

func newTestService(p *fakeProvider, catalog Catalog) *Service {
	resolver := provider.NewResolver(provider.NewRegistry(p), fakeStore{}, nil)
	return NewService(resolver, catalog, nil)
}

func score(songID int, rating float64, fc mai.FCType) mai.Score {
	return mai.Score{
		SongID:      songID,
		SongName:    fmt.Sprintf("song-%d", songID),
		ChartType:   mai.ChartDX,
		Level:       "13",
		Difficulty:  mai.DifficultyMaster,
		Achievement: 100.5,
		Rating:      rating,
		Grade:       mai.GradeSSS,
		FC:          fc,
	}
}

func TestFilterAllPerfect(t *testing.T) {
	in := []mai.Score{
		score(1, 100, mai.FCNone),
		score(2, 200, mai.FC),
		score(3, 300, mai.FCPlus),
		score(4, 400, mai.AP),
		score(5, 500, mai.APPlus),
	}

	out := FilterAllPerfect(in)
	require.Len(t, out, 2)
	assert.Equal(t, 4, out[0].SongID)
	assert.Equal(t, 5, out[1].SongID)

	// Every kept entry must appear in the input unchanged.
	for _, s := range out {
		assert.Contains(t, in, s)
		assert.True(t, s.FC.AllPerfect())
	}

	assert.Empty(t, FilterAllPerfect(nil))
}

func TestTopPerEraBucketsAndBounds(t *testing.T) {
	catalog := &fakeCatalog{current: map[int]bool{}}
	var scores []mai.Score
	// 40 legacy songs (ids 1..40) and 20 current (ids 101..120), each with a
	// distinct rating so the expected selection is unambiguous.
	for i := 1; i <= 40; i++ {
		scores = append(scores, score(i, float64(i), mai.AP))
	}
	for i := 101; i <= 120; i++ {
		catalog.current[i] = true
		scores = append(scores, score(i, float64(i), mai.AP))
	}
	rand.New(rand.NewSource(1)).Shuffle(len(scores), func(i, j int) {
		scores[i], scores[j] = scores[j], scores[i]
	})

	svc := newTestService(&fakeProvider{}, catalog)
	bests, err := svc.TopPerEra(context.Background(), scores)
	require.NoError(t, err)

	require.Len(t, bests.Standard, BestLegacyCount)
	require.Len(t, bests.DX, BestCurrentCount)

	// Legacy keeps ratings 40..6 descending; current keeps 120..106.
	assert.InDelta(t, 40, bests.Standard[0].Rating, 1e-9)
	assert.InDelta(t, 6, bests.Standard[BestLegacyCount-1].Rating, 1e-9)
	assert.InDelta(t, 120, bests.DX[0].Rating, 1e-9)
	assert.InDelta(t, 106, bests.DX[BestCurrentCount-1].Rating, 1e-9)

	// Totals are the exact sums of the kept entries.
	assert.InDelta(t, SumRatings(bests.Standard), bests.StandardTotal, 1e-9)
	assert.InDelta(t, SumRatings(bests.DX), bests.DXTotal, 1e-9)
}

func TestTopPerEraTieBreaksOnAchievement(t *testing.T) {
	a := score(1, 250, mai.AP)
	a.Achievement = 100.0
	b := score(2, 250, mai.AP)
	b.Achievement = 100.5

	svc := newTestService(&fakeProvider{}, &fakeCatalog{})
	bests, err := svc.TopPerEra(context.Background(), []mai.Score{a, b})
	require.NoError(t, err)
	require.Len(t, bests.Standard, 2)
	assert.Equal(t, 2, bests.Standard[0].SongID)
}

func TestTopPerEraCatalogErrorPropagates(t *testing.T) {
	svc := newTestService(&fakeProvider{}, &fakeCatalog{err: fmt.Errorf("catalog down")})
	_, err := svc.TopPerEra(context.Background(), []mai.Score{score(1, 100, mai.AP)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog down")
}

func TestEnsureTotals(t *testing.T) {
	computed := &mai.BestScores{
		Standard: []mai.Score{score(1, 100, mai.FCNone), score(2, 50.5, mai.FCNone)},
		DX:       []mai.Score{score(3, 25.25, mai.FCNone)},
	}
	EnsureTotals(computed)
	assert.InDelta(t, 150.5, computed.StandardTotal, 1e-9)
	assert.InDelta(t, 25.25, computed.DXTotal, 1e-9)

	// Provider-supplied totals are authoritative and never recomputed.
	provided := &mai.BestScores{
		StandardTotal:  999,
		DXTotal:        888,
		TotalsProvided: true,
		Standard:       []mai.Score{score(1, 1, mai.FCNone)},
	}
	EnsureTotals(provided)
	assert.InDelta(t, 999, provided.StandardTotal, 1e-9)
	assert.InDelta(t, 888, provided.DXTotal, 1e-9)
}

func TestSumRatingsOrderIndependent(t *testing.T) {
	scores := []mai.Score{score(1, 10, mai.FCNone), score(2, 20, mai.FCNone), score(3, 30, mai.FCNone)}
	want := SumRatings(scores)

	reversed := []mai.Score{scores[2], scores[1], scores[0]}
	assert.InDelta(t, want, SumRatings(reversed), 1e-9)
	assert.InDelta(t, 60, want, 1e-9)
}

func TestBestScoresFillsTotals(t *testing.T) {
	p := &fakeProvider{bests: &mai.BestScores{
		Standard: []mai.Score{score(1, 100, mai.FCNone)},
		DX:       []mai.Score{score(2, 200, mai.FCNone)},
	}}
	svc := newTestService(p, &fakeCatalog{})

	bests, err := svc.BestScores(context.Background(), "u1")
	require.NoError(t, err)
	assert.InDelta(t, 100, bests.StandardTotal, 1e-9)
	assert.InDelta(t, 200, bests.DXTotal, 1e-9)
}

func TestAllPerfectScoresNative(t *testing.T) {
	p := &fakeProvider{apBests: &mai.BestScores{
		StandardTotal:  10,
		DXTotal:        20,
		TotalsProvided: true,
	}}
	svc := newTestService(p, &fakeCatalog{})

	bests, err := svc.AllPerfectScores(context.Background(), "u1")
	require.NoError(t, err)
	assert.InDelta(t, 30, bests.Total(), 1e-9)
	assert.Zero(t, p.scoresFilteredCalls, "native path must not fetch the full list")
}

func TestAllPerfectScoresFallback(t *testing.T) {
	p := &fakeProvider{
		apErr: fmt.Errorf("no AP endpoint: %w", provider.ErrCapability),
		all: []mai.Score{
			score(1, 100, mai.AP),
			score(2, 200, mai.FC), // not AP, must be dropped
			score(3, 300, mai.APPlus),
			score(101, 400, mai.AP), // current era
		},
	}
	svc := newTestService(p, &fakeCatalog{current: map[int]bool{101: true}})

	bests, err := svc.AllPerfectScores(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.scoresFilteredCalls)

	require.Len(t, bests.Standard, 2)
	assert.Equal(t, 3, bests.Standard[0].SongID)
	assert.Equal(t, 1, bests.Standard[1].SongID)
	require.Len(t, bests.DX, 1)
	assert.Equal(t, 101, bests.DX[0].SongID)

	assert.InDelta(t, 400, bests.StandardTotal, 1e-9)
	assert.InDelta(t, 400, bests.DXTotal, 1e-9)
}

func TestAllPerfectScoresNonCapabilityErrorPropagates(t *testing.T) {
	p := &fakeProvider{apErr: provider.StatusError(provider.NameLXNS, 429, "/bests/ap")}
	svc := newTestService(p, &fakeCatalog{})

	_, err := svc.AllPerfectScores(context.Background(), "u1")
	assert.ErrorIs(t, err, provider.ErrRateLimited)
	assert.Zero(t, p.scoresFilteredCalls)
}
