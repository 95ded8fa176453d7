package nlq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicQuery(t *testing.T) {
	q := Parse("LeBron vs BOS last 10 games")

	assert.Equal(t, "LeBron", q.PlayerName)
	assert.Equal(t, []string{"BOS"}, q.OpponentCodes)
	require.NotNil(t, q.WindowSize)
	assert.Equal(t, 10, *q.WindowSize)
	assert.Empty(t, q.SeasonType)
	assert.Empty(t, q.StatFocus)
	assert.Empty(t, q.DateFrom)
	assert.Empty(t, q.DateTo)
}

func TestParseOpponentNickname(t *testing.T) {
	q := Parse("Stephen Curry vs Celtics last 5 games")

	assert.Equal(t, "Stephen Curry", q.PlayerName)
	assert.Equal(t, []string{"BOS"}, q.OpponentCodes)
	require.NotNil(t, q.WindowSize)
	assert.Equal(t, 5, *q.WindowSize)
}

func TestParseDefaultWindow(t *testing.T) {
	q := Parse("Giannis Antetokounmpo")

	require.NotNil(t, q.WindowSize)
	assert.Equal(t, DefaultWindow, *q.WindowSize)
	assert.Equal(t, "Giannis Antetokounmpo", q.PlayerName)
}

func TestParseWindowClamp(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"LeBron last 999 games", MaxWindow},
		{"LeBron last 400 games", 400},
		{"LeBron last 0 games", 1},
		{"LeBron last 1 game", 1},
	}
	for _, tc := range cases {
		q := Parse(tc.input)
		require.NotNil(t, q.WindowSize, tc.input)
		assert.Equal(t, tc.want, *q.WindowSize, tc.input)
	}
}

func TestParseWordWindow(t *testing.T) {
	q := Parse("LeBron last five games")

	require.NotNil(t, q.WindowSize)
	assert.Equal(t, 5, *q.WindowSize)
	assert.Equal(t, "LeBron", q.PlayerName)
}

func TestParseCareerWinsOverWindow(t *testing.T) {
	q := Parse("LeBron career last 10 games")

	assert.Nil(t, q.WindowSize)
	assert.Equal(t, "LeBron", q.PlayerName)
}

func TestParseRegularOverridesPlayoffs(t *testing.T) {
	q := Parse("LeBron playoffs regular season")
	assert.Equal(t, SeasonRegular, q.SeasonType)
	assert.Equal(t, "LeBron", q.PlayerName)

	q = Parse("LeBron playoffs")
	assert.Equal(t, SeasonPlayoffs, q.SeasonType)
}

func TestParseUnresolvedOpponentDropsFilter(t *testing.T) {
	q := Parse("LeBron vs Gotham City last 10 games")

	assert.Nil(t, q.OpponentCodes)
	require.NotNil(t, q.WindowSize)
	assert.Equal(t, 10, *q.WindowSize)
	assert.Equal(t, "LeBron", q.PlayerName)
}

func TestParseSince(t *testing.T) {
	q := Parse("LeBron since 2018")

	assert.Equal(t, "2018-01-01", q.DateFrom)
	assert.Empty(t, q.DateTo)
	// A date range without an explicit digit window unbounds the result set.
	assert.Nil(t, q.WindowSize)
	assert.Equal(t, "LeBron", q.PlayerName)
}

func TestParseBetweenNormalizesOrder(t *testing.T) {
	q := Parse("LeBron between 2020 and 2015")

	assert.Equal(t, "2015-01-01", q.DateFrom)
	assert.Equal(t, "2020-12-31", q.DateTo)
	assert.Nil(t, q.WindowSize)
	assert.Equal(t, "LeBron", q.PlayerName)
}

func TestParseDigitWindowSurvivesDateRange(t *testing.T) {
	q := Parse("Curry last 5 games since 2018")

	require.NotNil(t, q.WindowSize)
	assert.Equal(t, 5, *q.WindowSize)
	assert.Equal(t, "2018-01-01", q.DateFrom)
}

func TestParseStatFocus(t *testing.T) {
	cases := []struct {
		input string
		focus StatKey
		name  string
	}{
		{"Curry 3P% career", StatFG3Pct, "Curry"},
		{"Durant fg% last 10", StatFGPct, "Durant"},
		{"Harden ft% career", StatFTPct, "Harden"},
		{"Giannis points", StatPPG, "Giannis"},
		{"Jokic rebounds last 20 games", StatRPG, "Jokic"},
		{"Chris Paul assists career", StatAPG, "Chris Paul"},
		{"Westbrook turnovers last 20 games", StatTOV, "Westbrook"},
	}
	for _, tc := range cases {
		q := Parse(tc.input)
		assert.Equal(t, tc.focus, q.StatFocus, tc.input)
		assert.Equal(t, tc.name, q.PlayerName, tc.input)
	}
}

func TestParseCareerStat(t *testing.T) {
	q := Parse("Curry career 3P%")

	assert.Equal(t, "Curry", q.PlayerName)
	assert.Equal(t, StatFG3Pct, q.StatFocus)
	assert.Nil(t, q.WindowSize)
}

func TestStatKeyLabels(t *testing.T) {
	assert.Equal(t, "FG%", StatFGPct.Label())
	assert.Equal(t, "3P%", StatFG3Pct.Label())
	assert.Equal(t, "FT%", StatFTPct.Label())
	assert.Equal(t, "PPG", StatPPG.Label())

	assert.True(t, StatFG3Pct.IsPercentage())
	assert.False(t, StatPPG.IsPercentage())
}

func TestParseTrimsInput(t *testing.T) {
	q := Parse("  LeBron James  ")
	assert.Equal(t, "LeBron James", q.PlayerName)
}
