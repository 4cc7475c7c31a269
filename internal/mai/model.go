package mai

// MaxAchievement is the validation ceiling for achievement percentages.
// Standard charts top out at 100.5 and utage charts at 101.0; the ceiling
// leaves headroom above the highest value observed upstream (~101.5).
const MaxAchievement = 101.5

// Score is one normalized song/difficulty performance entry. Immutable after
// construction; produced only by provider normalization functions.
type Score struct {
	SongID     int        `json:"song_id"`
	SongName   string     `json:"song_name"`
	ChartType  ChartType  `json:"chart_type"`
	Level      string     `json:"level"` // display level, e.g. "13+"
	Difficulty Difficulty `json:"difficulty"`

	Achievement float64 `json:"achievement"` // percentage, 0..101.5
	DXScore     int     `json:"dx_score"`
	DXStars     int     `json:"dx_stars"`
	Rating      float64 `json:"rating"` // per-chart rating contribution

	Grade Grade  `json:"grade"`
	FC    FCType `json:"fc,omitempty"`
	FS    FSType `json:"fs,omitempty"`
}

// Validate checks the numeric invariants that enum parsing cannot cover.
func (s *Score) Validate() error {
	if s.Achievement < 0 || s.Achievement > MaxAchievement {
		return &ValidationError{Field: "achievement", Value: s.Achievement}
	}
	if s.Rating < 0 {
		return &ValidationError{Field: "rating", Value: s.Rating}
	}
	return nil
}

// BestScores is a bounded two-era ranking view: the top scores from the
// legacy catalog (Standard, up to 35) and the current catalog (DX, up to 15).
//
// Totals are authoritative when the provider supplied them; otherwise the
// aggregation layer fills them with the exact sum of each sub-list's rating
// contributions. TotalsProvided records which case applies.
type BestScores struct {
	StandardTotal  float64 `json:"standard_total"`
	DXTotal        float64 `json:"dx_total"`
	TotalsProvided bool    `json:"-"`

	Standard []Score `json:"standard"`
	DX       []Score `json:"dx"`
}

// Total returns the combined rating across both eras.
func (b *BestScores) Total() float64 {
	return b.StandardTotal + b.DXTotal
}

// Collection is a decorative collectible (icon, name plate, frame).
type Collection struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

// Trophy is a player title with a rarity color.
type Trophy struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Color       TrophyColor `json:"color"`
	Description string      `json:"description,omitempty"`
	Genre       string      `json:"genre,omitempty"`
}

// PlayerInfo is a player's public game identity. Constructed fresh on every
// fetch and never persisted; only bindings are stored.
//
// Rating is always present. FriendCode is set only by providers that support
// friend-code addressing; the collectible fields only by providers that
// expose them.
type PlayerInfo struct {
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	FriendCode string `json:"friend_code,omitempty"`
	CourseRank int    `json:"course_rank,omitempty"`
	ClassRank  int    `json:"class_rank,omitempty"`

	Trophy    *Trophy     `json:"trophy,omitempty"`
	Icon      *Collection `json:"icon,omitempty"`
	NamePlate *Collection `json:"name_plate,omitempty"`
	Frame     *Collection `json:"frame,omitempty"`

	UploadTime string `json:"upload_time,omitempty"`
}
