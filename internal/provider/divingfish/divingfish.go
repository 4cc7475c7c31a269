package divingfish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

// Provider translates the DivingFish REST API into the canonical model.
//
// DivingFish has no native AP-only or recent-plays endpoints; those
// operations report ErrCapability and the aggregation layer reconstructs
// them from the full record list where possible.
type Provider struct {
	client *Client
	logger *slog.Logger
}

var _ provider.ScoreProvider = (*Provider)(nil)

// New creates the DivingFish provider.
func New(baseURL string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client: NewClient(baseURL, 300, logger),
		logger: logger,
	}
}

// Name returns the binding name for this provider.
func (p *Provider) Name() string { return provider.NameDivingFish }

// Close releases the shared connection pool.
func (p *Provider) Close() { p.client.httpClient.CloseIdleConnections() }

// --------------------------------------------------------------------------
// Raw response shapes
// --------------------------------------------------------------------------

type scoreRaw struct {
	SongID       int     `json:"song_id"`
	Title        string  `json:"title"`
	Level        string  `json:"level"`
	LevelIndex   int     `json:"level_index"`
	Achievements float64 `json:"achievements"`
	DXScore      int     `json:"dxScore"`
	RA           float64 `json:"ra"`
	Rate         string  `json:"rate"`
	FC           string  `json:"fc"`
	FS           string  `json:"fs"`
	Type         string  `json:"type"`
}

type chartsRaw struct {
	SD []scoreRaw `json:"sd"`
	DX []scoreRaw `json:"dx"`
}

type queryPlayerRaw struct {
	Nickname         string    `json:"nickname"`
	Username         string    `json:"username"`
	Rating           int       `json:"rating"`
	AdditionalRating int       `json:"additional_rating"`
	Plate            string    `json:"plate"`
	Charts           chartsRaw `json:"charts"`
}

type recordsRaw struct {
	Nickname         string     `json:"nickname"`
	Username         string     `json:"username"`
	Rating           int        `json:"rating"`
	AdditionalRating int        `json:"additional_rating"`
	Records          []scoreRaw `json:"records"`
}

// --------------------------------------------------------------------------
// Normalization
// --------------------------------------------------------------------------

// chartTypeFromRaw maps DivingFish's "SD"/"DX" codes onto canonical chart
// types. Any other value is a hard error.
func chartTypeFromRaw(raw string) (mai.ChartType, error) {
	switch raw {
	case "SD":
		return mai.ChartStandard, nil
	case "DX":
		return mai.ChartDX, nil
	default:
		return "", &mai.ValidationError{Field: "type", Value: raw}
	}
}

func normalizeScore(raw scoreRaw) (mai.Score, error) {
	chart, err := chartTypeFromRaw(raw.Type)
	if err != nil {
		return mai.Score{}, err
	}
	diff, err := mai.ParseDifficulty(raw.LevelIndex)
	if err != nil {
		return mai.Score{}, err
	}
	grade, err := mai.ParseGrade(raw.Rate)
	if err != nil {
		return mai.Score{}, err
	}
	fc, err := mai.ParseFCType(raw.FC)
	if err != nil {
		return mai.Score{}, err
	}
	fs, err := mai.ParseFSType(raw.FS)
	if err != nil {
		return mai.Score{}, err
	}

	s := mai.Score{
		SongID:      raw.SongID,
		SongName:    raw.Title,
		ChartType:   chart,
		Level:       raw.Level,
		Difficulty:  diff,
		Achievement: raw.Achievements,
		DXScore:     raw.DXScore,
		Rating:      raw.RA,
		Grade:       grade,
		FC:          fc,
		FS:          fs,
	}
	if err := s.Validate(); err != nil {
		return mai.Score{}, err
	}
	return s, nil
}

func normalizeScores(raw []scoreRaw) ([]mai.Score, error) {
	scores := make([]mai.Score, 0, len(raw))
	for _, r := range raw {
		s, err := normalizeScore(r)
		if err != nil {
			return nil, fmt.Errorf("song %d: %w", r.SongID, err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// queryPayload builds the public query/player request body. DivingFish
// supports username and platform-account-id addressing but not friend codes.
func queryPayload(id provider.Identity) (map[string]interface{}, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	switch {
	case id.Username != "":
		return map[string]interface{}{"username": id.Username, "b50": 1}, nil
	case id.AccountID != "":
		return map[string]interface{}{"qq": id.AccountID, "b50": 1}, nil
	default:
		return nil, fmt.Errorf("DivingFish does not support friend-code lookup: %w", provider.ErrInvalidArgument)
	}
}

func (p *Provider) queryPlayer(ctx context.Context, id provider.Identity) (*queryPlayerRaw, error) {
	payload, err := queryPayload(id)
	if err != nil {
		return nil, err
	}
	body, err := p.client.post(ctx, "/query/player", payload)
	if err != nil {
		return nil, fmt.Errorf("query DivingFish player: %w", err)
	}
	var raw queryPlayerRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode DivingFish player: %w", err)
	}
	return &raw, nil
}

// FetchPlayerInfo returns the player's profile. DivingFish exposes no friend
// code or collectibles, so only name and rating are populated.
func (p *Provider) FetchPlayerInfo(ctx context.Context, id provider.Identity) (*mai.PlayerInfo, error) {
	raw, err := p.queryPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &mai.PlayerInfo{
		Name:       raw.Nickname,
		Rating:     raw.Rating,
		CourseRank: raw.AdditionalRating,
	}, nil
}

// FetchBestScores returns the two-era best-scores view. DivingFish supplies
// no per-era totals; the aggregation layer computes them by summation.
func (p *Provider) FetchBestScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	raw, err := p.queryPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	standard, err := normalizeScores(raw.Charts.SD)
	if err != nil {
		return nil, err
	}
	dx, err := normalizeScores(raw.Charts.DX)
	if err != nil {
		return nil, err
	}
	return &mai.BestScores{Standard: standard, DX: dx}, nil
}

// FetchAllPerfectScores is not natively supported by DivingFish.
func (p *Provider) FetchAllPerfectScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	return nil, fmt.Errorf("DivingFish has no AP-only endpoint: %w", provider.ErrCapability)
}

// FetchRecentScores is not supported by DivingFish.
func (p *Provider) FetchRecentScores(ctx context.Context, id provider.Identity) ([]mai.Score, error) {
	return nil, fmt.Errorf("DivingFish has no recent-plays endpoint: %w", provider.ErrCapability)
}

// fetchRecords retrieves the complete score list, which DivingFish gates
// behind the per-user import token.
func (p *Provider) fetchRecords(ctx context.Context, id provider.Identity) ([]mai.Score, error) {
	if id.ImportToken == "" {
		return nil, fmt.Errorf("full record list needs an import token: %w", provider.ErrCapability)
	}
	body, err := p.client.get(ctx, "/player/records", id.ImportToken)
	if err != nil {
		return nil, fmt.Errorf("fetch DivingFish records: %w", err)
	}
	var raw recordsRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode DivingFish records: %w", err)
	}
	return normalizeScores(raw.Records)
}

// FetchSongScores returns all difficulty records for one song, filtered from
// the full record list.
func (p *Provider) FetchSongScores(ctx context.Context, id provider.Identity, songID int, chart mai.ChartType) ([]mai.Score, error) {
	records, err := p.fetchRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	var scores []mai.Score
	for _, s := range records {
		if s.SongID == songID && s.ChartType == chart {
			scores = append(scores, s)
		}
	}
	return scores, nil
}

// FetchScoresFiltered returns the full score list narrowed by filter.
func (p *Provider) FetchScoresFiltered(ctx context.Context, id provider.Identity, filter provider.ScoreFilter) ([]mai.Score, error) {
	records, err := p.fetchRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	filtered := records[:0]
	for _, s := range records {
		if filter.Match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
