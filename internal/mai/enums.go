// Package mai defines canonical maimai DX data types that all score
// providers normalize into. These structs are the contract between provider
// clients and everything downstream — providers output these, the API and
// aggregation layers never see a raw upstream payload.
//
// Adding a new provider means implementing functions that return these types.
// Enum parsing is strict: an upstream value outside the lookup tables is a
// hard error, never a silent default.
package mai

import "fmt"

// ValidationError reports a raw provider value that does not map into the
// canonical model. Field names the offending attribute.
type ValidationError struct {
	Field string
	Value interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Value)
}

// --------------------------------------------------------------------------
// Chart type
// --------------------------------------------------------------------------

// ChartType is the note-layout variant of a chart.
type ChartType string

const (
	ChartStandard ChartType = "standard"
	ChartDX       ChartType = "dx"
	ChartUtage    ChartType = "utage" // special-event charts
)

var chartTypes = map[string]ChartType{
	"standard": ChartStandard,
	"dx":       ChartDX,
	"utage":    ChartUtage,
}

// ParseChartType maps a raw chart type string to its canonical value.
func ParseChartType(raw string) (ChartType, error) {
	if t, ok := chartTypes[raw]; ok {
		return t, nil
	}
	return "", &ValidationError{Field: "chart_type", Value: raw}
}

// --------------------------------------------------------------------------
// Difficulty
// --------------------------------------------------------------------------

// Difficulty is the chart difficulty tier. Utage charts report 0.
type Difficulty int

const (
	DifficultyBasic Difficulty = iota
	DifficultyAdvanced
	DifficultyExpert
	DifficultyMaster
	DifficultyReMaster
)

// ParseDifficulty maps an upstream level index to a Difficulty.
func ParseDifficulty(levelIndex int) (Difficulty, error) {
	if levelIndex < int(DifficultyBasic) || levelIndex > int(DifficultyReMaster) {
		return 0, &ValidationError{Field: "difficulty", Value: levelIndex}
	}
	return Difficulty(levelIndex), nil
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyBasic:
		return "BASIC"
	case DifficultyAdvanced:
		return "ADVANCED"
	case DifficultyExpert:
		return "EXPERT"
	case DifficultyMaster:
		return "MASTER"
	case DifficultyReMaster:
		return "Re:MASTER"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// --------------------------------------------------------------------------
// Full combo / full sync
// --------------------------------------------------------------------------

// FCType is the full-combo classification of a play. The empty string means
// the play was not a full combo.
type FCType string

const (
	FCNone FCType = ""
	FC     FCType = "fc"
	FCPlus FCType = "fcp"
	AP     FCType = "ap"  // ALL PERFECT
	APPlus FCType = "app" // ALL PERFECT+
)

var fcTypes = map[string]FCType{
	"fc":  FC,
	"fcp": FCPlus,
	"ap":  AP,
	"app": APPlus,
}

// ParseFCType maps a raw full-combo code. An empty raw value is valid and
// means "no full combo".
func ParseFCType(raw string) (FCType, error) {
	if raw == "" {
		return FCNone, nil
	}
	if t, ok := fcTypes[raw]; ok {
		return t, nil
	}
	return FCNone, &ValidationError{Field: "fc", Value: raw}
}

// AllPerfect reports whether the classification is one of the two top tiers.
func (t FCType) AllPerfect() bool {
	return t == AP || t == APPlus
}

// FSType is the full-sync (multiplayer) classification of a play.
type FSType string

const (
	FSNone   FSType = ""
	FSSync   FSType = "sync"
	FS       FSType = "fs"
	FSPlus   FSType = "fsp"
	FSDX     FSType = "fsd"
	FSDXPlus FSType = "fsdp"
)

var fsTypes = map[string]FSType{
	"sync": FSSync,
	"fs":   FS,
	"fsp":  FSPlus,
	"fsd":  FSDX,
	"fsdp": FSDXPlus,
}

// ParseFSType maps a raw full-sync code. An empty raw value is valid.
func ParseFSType(raw string) (FSType, error) {
	if raw == "" {
		return FSNone, nil
	}
	if t, ok := fsTypes[raw]; ok {
		return t, nil
	}
	return FSNone, &ValidationError{Field: "fs", Value: raw}
}

// --------------------------------------------------------------------------
// Grade
// --------------------------------------------------------------------------

// Grade is the letter grade of a play.
type Grade string

const (
	GradeD    Grade = "d"
	GradeC    Grade = "c"
	GradeB    Grade = "b"
	GradeBB   Grade = "bb"
	GradeBBB  Grade = "bbb"
	GradeA    Grade = "a"
	GradeAA   Grade = "aa"
	GradeAAA  Grade = "aaa"
	GradeS    Grade = "s"
	GradeSP   Grade = "sp"
	GradeSS   Grade = "ss"
	GradeSSP  Grade = "ssp"
	GradeSSS  Grade = "sss"
	GradeSSSP Grade = "sssp"
)

var grades = map[string]Grade{
	"d": GradeD, "c": GradeC,
	"b": GradeB, "bb": GradeBB, "bbb": GradeBBB,
	"a": GradeA, "aa": GradeAA, "aaa": GradeAAA,
	"s": GradeS, "sp": GradeSP,
	"ss": GradeSS, "ssp": GradeSSP,
	"sss": GradeSSS, "sssp": GradeSSSP,
}

// ParseGrade maps a raw grade string to its canonical value.
func ParseGrade(raw string) (Grade, error) {
	if g, ok := grades[raw]; ok {
		return g, nil
	}
	return "", &ValidationError{Field: "rate", Value: raw}
}

// --------------------------------------------------------------------------
// Trophy color
// --------------------------------------------------------------------------

// TrophyColor is the rarity color of a player title.
type TrophyColor string

const (
	TrophyNormal  TrophyColor = "Normal"
	TrophyBronze  TrophyColor = "Bronze"
	TrophySilver  TrophyColor = "Silver"
	TrophyGold    TrophyColor = "Gold"
	TrophyRainbow TrophyColor = "Rainbow"
)

var trophyColors = map[string]TrophyColor{
	"Normal":  TrophyNormal,
	"Bronze":  TrophyBronze,
	"Silver":  TrophySilver,
	"Gold":    TrophyGold,
	"Rainbow": TrophyRainbow,
}

// ParseTrophyColor maps a raw trophy color string.
func ParseTrophyColor(raw string) (TrophyColor, error) {
	if c, ok := trophyColors[raw]; ok {
		return c, nil
	}
	return "", &ValidationError{Field: "trophy.color", Value: raw}
}
