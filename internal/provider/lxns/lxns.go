package lxns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

// Provider translates the LXNS REST API into the canonical model.
type Provider struct {
	client *Client
	logger *slog.Logger
}

var _ provider.ScoreProvider = (*Provider)(nil)

// New creates the LXNS provider with the given developer API key.
func New(baseURL, devKey string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client: NewClient(baseURL, devKey, 300, logger),
		logger: logger,
	}
}

// Name returns the binding name for this provider.
func (p *Provider) Name() string { return provider.NameLXNS }

// Close releases the shared connection pool.
func (p *Provider) Close() { p.client.httpClient.CloseIdleConnections() }

// playerPath maps an identity onto the LXNS player endpoint. LXNS supports
// friend-code and platform-account-id addressing but not usernames.
func playerPath(id provider.Identity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	switch {
	case id.FriendCode != "":
		return "/player/" + url.PathEscape(id.FriendCode), nil
	case id.AccountID != "":
		return "/player/qq/" + url.PathEscape(id.AccountID), nil
	default:
		return "", fmt.Errorf("LXNS does not support username lookup: %w", provider.ErrInvalidArgument)
	}
}

// resolveFriendCode returns the identity's friend code, performing a player
// info lookup first when only a platform account id is available.
func (p *Provider) resolveFriendCode(ctx context.Context, id provider.Identity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	if id.FriendCode != "" {
		return id.FriendCode, nil
	}
	info, err := p.FetchPlayerInfo(ctx, id)
	if err != nil {
		return "", err
	}
	if info.FriendCode == "" {
		return "", fmt.Errorf("LXNS profile has no friend code: %w", provider.ErrUpstream)
	}
	return info.FriendCode, nil
}

// --------------------------------------------------------------------------
// Raw response shapes
// --------------------------------------------------------------------------

type scoreRaw struct {
	ID           int     `json:"id"`
	SongName     string  `json:"song_name"`
	Level        string  `json:"level"`
	LevelIndex   int     `json:"level_index"`
	Achievements float64 `json:"achievements"`
	FC           string  `json:"fc"`
	FS           string  `json:"fs"`
	Rate         string  `json:"rate"`
	DXScore      int     `json:"dx_score"`
	DXRating     float64 `json:"dx_rating"`
	DXStar       int     `json:"dx_star"`
	Type         string  `json:"type"`
}

type collectionRaw struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

type trophyRaw struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type playerRaw struct {
	Name       string         `json:"name"`
	Rating     int            `json:"rating"`
	FriendCode int64          `json:"friend_code"`
	CourseRank int            `json:"course_rank"`
	ClassRank  int            `json:"class_rank"`
	Trophy     *trophyRaw     `json:"trophy"`
	Icon       *collectionRaw `json:"icon"`
	NamePlate  *collectionRaw `json:"name_plate"`
	Frame      *collectionRaw `json:"frame"`
	UploadTime string         `json:"upload_time"`
}

type bestsRaw struct {
	StandardTotal float64    `json:"standard_total"`
	DXTotal       float64    `json:"dx_total"`
	Standard      []scoreRaw `json:"standard"`
	DX            []scoreRaw `json:"dx"`
}

// --------------------------------------------------------------------------
// Normalization
// --------------------------------------------------------------------------

func normalizeScore(raw scoreRaw) (mai.Score, error) {
	chart, err := mai.ParseChartType(raw.Type)
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
		SongID:      raw.ID,
		SongName:    raw.SongName,
		ChartType:   chart,
		Level:       raw.Level,
		Difficulty:  diff,
		Achievement: raw.Achievements,
		DXScore:     raw.DXScore,
		DXStars:     raw.DXStar,
		Rating:      raw.DXRating,
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
			return nil, fmt.Errorf("song %d: %w", r.ID, err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

func normalizeBests(raw bestsRaw) (*mai.BestScores, error) {
	standard, err := normalizeScores(raw.Standard)
	if err != nil {
		return nil, err
	}
	dx, err := normalizeScores(raw.DX)
	if err != nil {
		return nil, err
	}
	return &mai.BestScores{
		StandardTotal:  raw.StandardTotal,
		DXTotal:        raw.DXTotal,
		TotalsProvided: true,
		Standard:       standard,
		DX:             dx,
	}, nil
}

func normalizePlayer(raw playerRaw) (*mai.PlayerInfo, error) {
	info := &mai.PlayerInfo{
		Name:       raw.Name,
		Rating:     raw.Rating,
		CourseRank: raw.CourseRank,
		ClassRank:  raw.ClassRank,
		UploadTime: raw.UploadTime,
	}
	if raw.FriendCode != 0 {
		info.FriendCode = strconv.FormatInt(raw.FriendCode, 10)
	}
	if raw.Trophy != nil {
		color, err := mai.ParseTrophyColor(raw.Trophy.Color)
		if err != nil {
			return nil, err
		}
		info.Trophy = &mai.Trophy{
			ID:          raw.Trophy.ID,
			Name:        raw.Trophy.Name,
			Color:       color,
			Description: raw.Trophy.Description,
		}
	}
	if raw.Icon != nil {
		info.Icon = collection(raw.Icon)
	}
	if raw.NamePlate != nil {
		info.NamePlate = collection(raw.NamePlate)
	}
	if raw.Frame != nil {
		info.Frame = collection(raw.Frame)
	}
	return info, nil
}

func collection(raw *collectionRaw) *mai.Collection {
	return &mai.Collection{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Genre:       raw.Genre,
	}
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// FetchPlayerInfo returns the player's public profile, addressed by friend
// code or platform account id.
func (p *Provider) FetchPlayerInfo(ctx context.Context, id provider.Identity) (*mai.PlayerInfo, error) {
	path, err := playerPath(id)
	if err != nil {
		return nil, err
	}
	data, err := p.client.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch LXNS player: %w", err)
	}
	var raw playerRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS player: %w", err)
	}
	return normalizePlayer(raw)
}

// VerifyPersonalToken fetches the caller's own profile using a personal API
// key. Used by the bind flow to validate the key and learn the friend code.
func (p *Provider) VerifyPersonalToken(ctx context.Context, userToken string) (*mai.PlayerInfo, error) {
	data, err := p.client.getUser(ctx, "/player", userToken)
	if err != nil {
		return nil, fmt.Errorf("verify LXNS personal token: %w", err)
	}
	var raw playerRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS player: %w", err)
	}
	return normalizePlayer(raw)
}

// FetchBestScores returns the native two-era best-scores view with
// provider-supplied totals.
func (p *Provider) FetchBestScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	return p.fetchBests(ctx, id, "/bests", nil)
}

// FetchAllPerfectScores returns the native AP-only best-scores view.
func (p *Provider) FetchAllPerfectScores(ctx context.Context, id provider.Identity) (*mai.BestScores, error) {
	return p.fetchBests(ctx, id, "/bests/ap", nil)
}

func (p *Provider) fetchBests(ctx context.Context, id provider.Identity, suffix string, params url.Values) (*mai.BestScores, error) {
	code, err := p.resolveFriendCode(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := p.client.get(ctx, "/player/"+url.PathEscape(code)+suffix, params)
	if err != nil {
		return nil, fmt.Errorf("fetch LXNS bests: %w", err)
	}
	var raw bestsRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS bests: %w", err)
	}
	return normalizeBests(raw)
}

// FetchRecentScores returns the player's most recent play records.
func (p *Provider) FetchRecentScores(ctx context.Context, id provider.Identity) ([]mai.Score, error) {
	code, err := p.resolveFriendCode(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := p.client.get(ctx, "/player/"+url.PathEscape(code)+"/recents", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch LXNS recents: %w", err)
	}
	var raw []scoreRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS recents: %w", err)
	}
	return normalizeScores(raw)
}

// FetchSongScores returns all difficulty records for one song and chart type.
func (p *Provider) FetchSongScores(ctx context.Context, id provider.Identity, songID int, chart mai.ChartType) ([]mai.Score, error) {
	code, err := p.resolveFriendCode(ctx, id)
	if err != nil {
		return nil, err
	}
	params := url.Values{
		"song_id":   {strconv.Itoa(songID)},
		"song_type": {string(chart)},
	}
	data, err := p.client.get(ctx, "/player/"+url.PathEscape(code)+"/bests", params)
	if err != nil {
		return nil, fmt.Errorf("fetch LXNS song scores: %w", err)
	}
	var raw []scoreRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS song scores: %w", err)
	}
	return normalizeScores(raw)
}

// FetchScoresFiltered returns the full score list narrowed by filter. LXNS
// has no server-side filter, so the list is filtered client-side.
func (p *Provider) FetchScoresFiltered(ctx context.Context, id provider.Identity, filter provider.ScoreFilter) ([]mai.Score, error) {
	code, err := p.resolveFriendCode(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := p.client.get(ctx, "/player/"+url.PathEscape(code)+"/scores", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch LXNS scores: %w", err)
	}
	var raw []scoreRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode LXNS scores: %w", err)
	}
	scores, err := normalizeScores(raw)
	if err != nil {
		return nil, err
	}
	filtered := scores[:0]
	for _, s := range scores {
		if filter.Match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
