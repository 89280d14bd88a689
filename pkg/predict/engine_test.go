package predict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() TeamTable {
	return TeamTable{
		{Name: "Manchester United", Stats: TeamStats{XGPer90: 1.8, XGAPer90: 1.2, XGTotal: 18.0, XGATotal: 12.0, MatchesPlayed: 10}},
		{Name: "Manchester City", Stats: TeamStats{XGPer90: 2.3, XGAPer90: 0.9, XGTotal: 23.0, XGATotal: 9.0, MatchesPlayed: 10}},
		{Name: "Arsenal", Stats: TeamStats{XGPer90: 1.5, XGAPer90: 1.4, XGTotal: 15.0, XGATotal: 14.0, MatchesPlayed: 10}},
	}
}

func TestFindTeamExactMatch(t *testing.T) {
	name, stats, ok := FindTeam("Manchester United", sampleTable())
	require.True(t, ok)
	assert.Equal(t, "Manchester United", name)
	assert.Equal(t, 1.8, stats.XGPer90)
}

func TestFindTeamCaseInsensitiveAndTrimmed(t *testing.T) {
	name, _, ok := FindTeam("  arsenal  ", sampleTable())
	require.True(t, ok)
	assert.Equal(t, "Arsenal", name)
}

func TestFindTeamPartialPrefersTableOrder(t *testing.T) {
	// "Manchester" is a substring of both Manchester teams; the first
	// entry in table order wins.
	name, _, ok := FindTeam("Manchester", sampleTable())
	require.True(t, ok)
	assert.Equal(t, "Manchester United", name)
}

func TestFindTeamExactBeatsPartial(t *testing.T) {
	table := TeamTable{
		{Name: "FC Barcelona B", Stats: TeamStats{XGPer90: 1.0}},
		{Name: "FC Barcelona", Stats: TeamStats{XGPer90: 2.0}},
	}
	name, _, ok := FindTeam("FC Barcelona", table)
	require.True(t, ok)
	assert.Equal(t, "FC Barcelona", name)
}

func TestFindTeamReverseSubstring(t *testing.T) {
	// The query may contain the canonical name rather than the reverse.
	name, _, ok := FindTeam("The Arsenal Football Club", sampleTable())
	require.True(t, ok)
	assert.Equal(t, "Arsenal", name)
}

func TestFindTeamNotFound(t *testing.T) {
	_, _, ok := FindTeam("Liverpool", sampleTable())
	assert.False(t, ok)
}

func TestCalcExpectedGoals(t *testing.T) {
	home := TeamStats{XGPer90: 1.8, XGAPer90: 1.2}
	away := TeamStats{XGPer90: 1.5, XGAPer90: 1.4}
	avgs := LeagueAverages{AvgXGPer90: 1.4, AvgXGAPer90: 1.4}

	xg := CalcExpectedGoals(home, away, avgs)

	// homeXG = (1.8/1.4) * (1.4/1.4) * 1.4 = 1.8
	assert.InDelta(t, 1.8, xg.HomeXG, 0.0001)
	// awayXG = (1.5/1.4) * (1.2/1.4) * 1.4 = 1.2857 -> 1.286
	assert.InDelta(t, 1.286, xg.AwayXG, 0.0001)
}

func TestCalcExpectedGoalsClampsAverages(t *testing.T) {
	home := TeamStats{XGPer90: 1.8, XGAPer90: 1.2}
	away := TeamStats{XGPer90: 1.5, XGAPer90: 1.4}

	xg := CalcExpectedGoals(home, away, LeagueAverages{})

	// Averages floor at 0.1, so nothing divides by zero.
	assert.InDelta(t, 25.2, xg.HomeXG, 0.0001)
	assert.InDelta(t, 18.0, xg.AwayXG, 0.0001)
}

func TestBuildPredictionsAggregates(t *testing.T) {
	result := BuildPredictions(GoalProbabilities(1.5), GoalProbabilities(1.2))

	// Outcomes partition the (truncated) matrix.
	assert.InDelta(t, 100.0, result.HomeWin+result.Draw+result.AwayWin, 0.5)

	// Complements come from the unrounded fractions.
	assert.InDelta(t, 100.0, result.Over25+result.Under25, 0.11)
	assert.InDelta(t, 100.0, result.BTTSYes+result.BTTSNo, 0.11)

	require.Len(t, result.Matrix, MaxGoals+1)
	for _, row := range result.Matrix {
		require.Len(t, row, MaxGoals+1)
	}

	// Cells are the product of the marginals, rounded to six places.
	expected := PoissonPMF(1, 1.5) * PoissonPMF(1, 1.2)
	assert.InDelta(t, expected, result.Matrix[1][1], 0.000001)
}

func TestBuildPredictionsTopScores(t *testing.T) {
	result := BuildPredictions(GoalProbabilities(1.5), GoalProbabilities(1.2))

	require.Len(t, result.TopScores, 3)
	assert.GreaterOrEqual(t, result.TopScores[0].Prob, result.TopScores[1].Prob)
	assert.GreaterOrEqual(t, result.TopScores[1].Prob, result.TopScores[2].Prob)

	// With these rates 1-1 is the modal scoreline.
	assert.Equal(t, 1, result.TopScores[0].Home)
	assert.Equal(t, 1, result.TopScores[0].Away)
}

func TestBuildPredictionsTieBreaksRowMajor(t *testing.T) {
	// Uniform marginals make every cell equal; the stable sort must keep
	// row-major order.
	uniform := []float64{0.5, 0.5}
	result := BuildPredictions(uniform, uniform)

	require.Len(t, result.TopScores, 3)
	assert.Equal(t, ScoreCandidate{Home: 0, Away: 0, Prob: 0.25}, result.TopScores[0])
	assert.Equal(t, ScoreCandidate{Home: 0, Away: 1, Prob: 0.25}, result.TopScores[1])
	assert.Equal(t, ScoreCandidate{Home: 1, Away: 0, Prob: 0.25}, result.TopScores[2])
}

func TestPredictResolvesCanonicalNames(t *testing.T) {
	avgs := LeagueAverages{AvgXGPer90: 1.4, AvgXGAPer90: 1.4}

	result, err := Predict("manchester", "arsenal", sampleTable(), avgs)
	require.NoError(t, err)

	assert.Equal(t, "Manchester United", result.HomeTeam)
	assert.Equal(t, "Arsenal", result.AwayTeam)
	assert.Greater(t, result.HomeXG, 0.0)
	assert.Greater(t, result.AwayXG, 0.0)
}

func TestPredictHomeTeamNotFound(t *testing.T) {
	_, err := Predict("Liverpool", "Arsenal", sampleTable(), LeagueAverages{AvgXGPer90: 1.4, AvgXGAPer90: 1.4})
	require.Error(t, err)

	var notFound *TeamNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "home", notFound.Side)
	assert.Equal(t, "Liverpool", notFound.Query)
	assert.Contains(t, err.Error(), `home team "Liverpool" not found`)
}

func TestPredictAwayTeamNotFound(t *testing.T) {
	_, err := Predict("Arsenal", "Everton", sampleTable(), LeagueAverages{AvgXGPer90: 1.4, AvgXGAPer90: 1.4})
	require.Error(t, err)

	var notFound *TeamNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "away", notFound.Side)
	assert.Equal(t, "Everton", notFound.Query)
}

func TestPredictHomeCheckedFirst(t *testing.T) {
	_, err := Predict("Liverpool", "Everton", sampleTable(), LeagueAverages{AvgXGPer90: 1.4, AvgXGAPer90: 1.4})
	require.Error(t, err)

	var notFound *TeamNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "home", notFound.Side)
}
