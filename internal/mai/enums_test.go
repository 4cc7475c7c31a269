package mai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartType(t *testing.T) {
	tests := []struct {
		raw     string
		want    ChartType
		wantErr bool
	}{
		{raw: "standard", want: ChartStandard},
		{raw: "dx", want: ChartDX},
		{raw: "utage", want: ChartUtage},
		{raw: "", wantErr: true},
		{raw: "DX", wantErr: true},
		{raw: "remaster", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			got, err := ParseChartType(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "chart_type", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for idx, want := range []Difficulty{
		DifficultyBasic, DifficultyAdvanced, DifficultyExpert,
		DifficultyMaster, DifficultyReMaster,
	} {
		got, err := ParseDifficulty(idx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, idx := range []int{-1, 5, 42} {
		_, err := ParseDifficulty(idx)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "level index %d", idx)
		assert.Equal(t, "difficulty", verr.Field)
	}
}

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "BASIC", DifficultyBasic.String())
	assert.Equal(t, "ADVANCED", DifficultyAdvanced.String())
	assert.Equal(t, "EXPERT", DifficultyExpert.String())
	assert.Equal(t, "MASTER", DifficultyMaster.String())
	assert.Equal(t, "Re:MASTER", DifficultyReMaster.String())
	assert.Equal(t, "Difficulty(9)", Difficulty(9).String())
}

func TestParseFCType(t *testing.T) {
	// Empty means "no full combo", not an error.
	got, err := ParseFCType("")
	require.NoError(t, err)
	assert.Equal(t, FCNone, got)

	tests := map[string]FCType{
		"fc":  FC,
		"fcp": FCPlus,
		"ap":  AP,
		"app": APPlus,
	}
	for raw, want := range tests {
		got, err := ParseFCType(raw)
		require.NoError(t, err, "raw=%s", raw)
		assert.Equal(t, want, got)
	}

	_, err = ParseFCType("allperfect")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fc", verr.Field)
}

func TestFCTypeAllPerfect(t *testing.T) {
	assert.True(t, AP.AllPerfect())
	assert.True(t, APPlus.AllPerfect())
	assert.False(t, FC.AllPerfect())
	assert.False(t, FCPlus.AllPerfect())
	assert.False(t, FCNone.AllPerfect())
}

func TestParseFSType(t *testing.T) {
	got, err := ParseFSType("")
	require.NoError(t, err)
	assert.Equal(t, FSNone, got)

	tests := map[string]FSType{
		"sync": FSSync,
		"fs":   FS,
		"fsp":  FSPlus,
		"fsd":  FSDX,
		"fsdp": FSDXPlus,
	}
	for raw, want := range tests {
		got, err := ParseFSType(raw)
		require.NoError(t, err, "raw=%s", raw)
		assert.Equal(t, want, got)
	}

	_, err = ParseFSType("fdx")
	assert.Error(t, err)
}

func TestParseGrade(t *testing.T) {
	tests := map[string]Grade{
		"d": GradeD, "c": GradeC,
		"b": GradeB, "bb": GradeBB, "bbb": GradeBBB,
		"a": GradeA, "aa": GradeAA, "aaa": GradeAAA,
		"s": GradeS, "sp": GradeSP,
		"ss": GradeSS, "ssp": GradeSSP,
		"sss": GradeSSS, "sssp": GradeSSSP,
	}
	for raw, want := range tests {
		got, err := ParseGrade(raw)
		require.NoError(t, err, "raw=%s", raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "SSS", "s+"} {
		_, err := ParseGrade(raw)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "raw=%q", raw)
		assert.Equal(t, "rate", verr.Field)
	}
}

func TestParseTrophyColor(t *testing.T) {
	got, err := ParseTrophyColor("Rainbow")
	require.NoError(t, err)
	assert.Equal(t, TrophyRainbow, got)

	_, err = ParseTrophyColor("rainbow") // case-sensitive
	assert.Error(t, err)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "fc", Value: "xyz"}
	assert.Equal(t, "invalid value for fc: xyz", err.Error())
	assert.False(t, errors.Is(err, errors.New("other")))
}
