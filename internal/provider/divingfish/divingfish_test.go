package divingfish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := New(srv.URL, nil)
	t.Cleanup(p.Close)
	return p
}

func TestFetchPlayerInfoByAccountID(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query/player", r.URL.Path)
		assert.Empty(t, r.Header.Get("Import-Token"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "10001", payload["qq"])
		assert.EqualValues(t, 1, payload["b50"])

		json.NewEncoder(w).Encode(map[string]any{
			"nickname":          "rikka",
			"username":          "rikka_user",
			"rating":            14500,
			"additional_rating": 8,
		})
	})

	info, err := p.FetchPlayerInfo(context.Background(), provider.Identity{AccountID: "10001"})
	require.NoError(t, err)
	assert.Equal(t, "rikka", info.Name)
	assert.Equal(t, 14500, info.Rating)
	assert.Equal(t, 8, info.CourseRank)
	assert.Empty(t, info.FriendCode)
}

func TestFetchPlayerInfoByUsername(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "rikka_user", payload["username"])
		_, hasQQ := payload["qq"]
		assert.False(t, hasQQ)

		json.NewEncoder(w).Encode(map[string]any{"nickname": "rikka", "rating": 1})
	})

	_, err := p.FetchPlayerInfo(context.Background(), provider.Identity{Username: "rikka_user"})
	require.NoError(t, err)
}

func TestFriendCodeUnsupported(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := p.FetchPlayerInfo(context.Background(), provider.Identity{FriendCode: "123"})
	assert.ErrorIs(t, err, provider.ErrInvalidArgument)
}

func TestFetchBestScores(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"nickname": "rikka",
			"rating":   14500,
			"charts": map[string]any{
				"sd": []map[string]any{{
					"song_id": 100, "title": "Legacy Song", "level": "13",
					"level_index": 3, "achievements": 100.5, "dxScore": 2000,
					"ra": 290, "rate": "sssp", "fc": "fcp", "fs": "", "type": "SD",
				}},
				"dx": []map[string]any{{
					"song_id": 200, "title": "New Song", "level": "14",
					"level_index": 3, "achievements": 99.8, "dxScore": 2800,
					"ra": 295, "rate": "ssp", "fc": "", "fs": "fsp", "type": "DX",
				}},
			},
		})
	})

	bests, err := p.FetchBestScores(context.Background(), provider.Identity{AccountID: "1"})
	require.NoError(t, err)

	// DivingFish never supplies totals; the aggregation layer computes them.
	assert.False(t, bests.TotalsProvided)
	assert.Zero(t, bests.StandardTotal)
	assert.Zero(t, bests.DXTotal)

	require.Len(t, bests.Standard, 1)
	require.Len(t, bests.DX, 1)
	assert.Equal(t, mai.ChartStandard, bests.Standard[0].ChartType)
	assert.Equal(t, mai.ChartDX, bests.DX[0].ChartType)
	assert.Equal(t, mai.FCPlus, bests.Standard[0].FC)
	assert.Equal(t, mai.FSPlus, bests.DX[0].FS)
	assert.InDelta(t, 290, bests.Standard[0].Rating, 1e-9)
}

func TestChartTypeFromRawStrict(t *testing.T) {
	for raw, want := range map[string]mai.ChartType{"SD": mai.ChartStandard, "DX": mai.ChartDX} {
		got, err := chartTypeFromRaw(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "sd", "dx", "UTAGE"} {
		_, err := chartTypeFromRaw(raw)
		var verr *mai.ValidationError
		require.ErrorAs(t, err, &verr, "raw=%q", raw)
		assert.Equal(t, "type", verr.Field)
	}
}

func TestCapabilityErrors(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	id := provider.Identity{AccountID: "1"}

	_, err := p.FetchAllPerfectScores(context.Background(), id)
	assert.ErrorIs(t, err, provider.ErrCapability)

	_, err = p.FetchRecentScores(context.Background(), id)
	assert.ErrorIs(t, err, provider.ErrCapability)

	// Record-list operations need an import token.
	_, err = p.FetchScoresFiltered(context.Background(), id, provider.ScoreFilter{})
	assert.ErrorIs(t, err, provider.ErrCapability)

	_, err = p.FetchSongScores(context.Background(), id, 100, mai.ChartDX)
	assert.ErrorIs(t, err, provider.ErrCapability)
}

func TestFetchScoresFilteredUsesImportToken(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/player/records", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get("Import-Token"))

		json.NewEncoder(w).Encode(map[string]any{
			"nickname": "rikka",
			"records": []map[string]any{
				{
					"song_id": 1, "title": "A", "level": "12", "level_index": 2,
					"achievements": 95, "ra": 180, "rate": "aaa", "type": "SD",
				},
				{
					"song_id": 2, "title": "B", "level": "14", "level_index": 3,
					"achievements": 100.3, "ra": 300, "rate": "sss", "type": "DX",
				},
			},
		})
	})

	scores, err := p.FetchScoresFiltered(context.Background(),
		provider.Identity{AccountID: "1", ImportToken: "tok-1"},
		provider.ScoreFilter{MinAchievement: 100})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 2, scores[0].SongID)
}

func TestFetchSongScoresFiltersRecords(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{
					"song_id": 100, "title": "T", "level": "13", "level_index": 2,
					"achievements": 99, "ra": 250, "rate": "ssp", "type": "DX",
				},
				{
					"song_id": 100, "title": "T", "level": "14", "level_index": 3,
					"achievements": 98, "ra": 260, "rate": "ss", "type": "DX",
				},
				{
					"song_id": 100, "title": "T", "level": "13", "level_index": 3,
					"achievements": 97, "ra": 240, "rate": "sp", "type": "SD",
				},
				{
					"song_id": 999, "title": "Other", "level": "13", "level_index": 3,
					"achievements": 96, "ra": 230, "rate": "s", "type": "DX",
				},
			},
		})
	})

	scores, err := p.FetchSongScores(context.Background(),
		provider.Identity{AccountID: "1", ImportToken: "tok-1"}, 100, mai.ChartDX)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.Equal(t, 100, s.SongID)
		assert.Equal(t, mai.ChartDX, s.ChartType)
	}
}

func TestQueryPlayerNotFound(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := p.FetchPlayerInfo(context.Background(), provider.Identity{AccountID: "1"})
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

func TestImportTokenRejected(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.FetchScoresFiltered(context.Background(),
		provider.Identity{AccountID: "1", ImportToken: "bad"}, provider.ScoreFilter{})
	assert.ErrorIs(t, err, provider.ErrAuth)
}
