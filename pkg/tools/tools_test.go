package tools

import (
	"testing"

	"github.com/goalgorithm/mcp/pkg/predict"
	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, "64.2%", percent(64.2))
	assert.Equal(t, "100.0%", percent(100))
	assert.Equal(t, "5.0%", percent(5))
	assert.Equal(t, "0.0%", percent(0))
}

func TestTableFromStatsPreservesOrder(t *testing.T) {
	rows := []*understat.TeamStats{
		{TeamName: "Zeta United", XGPer90: 1.2, XGAPer90: 1.0, XGTotal: 12, XGATotal: 10, MatchesPlayed: 10},
		{TeamName: "Alpha City", XGPer90: 2.1, XGAPer90: 0.8, XGTotal: 21, XGATotal: 8, MatchesPlayed: 10},
	}

	table := tableFromStats(rows)
	require.Len(t, table, 2)
	assert.Equal(t, "Zeta United", table[0].Name)
	assert.Equal(t, "Alpha City", table[1].Name)
	assert.Equal(t, 2.1, table[1].Stats.XGPer90)
	assert.Equal(t, 10, table[1].Stats.MatchesPlayed)
}

func TestFormatPrediction(t *testing.T) {
	result := &predict.PredictionResult{
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		HomeXG:   1.8,
		AwayXG:   1.2,
		Matrix:   [][]float64{{0.1}},
		HomeWin:  52.3,
		Draw:     24.1,
		AwayWin:  23.6,
		Over25:   55.1,
		Under25:  44.9,
		BTTSYes:  48.0,
		BTTSNo:   52.0,
		TopScores: []predict.ScoreCandidate{
			{Home: 2, Away: 1, Prob: 0.123},
			{Home: 1, Away: 1, Prob: 0.111},
		},
	}
	league := understat.League{ID: "9", Name: "Premier League"}

	out := formatPrediction(result, league)

	assert.Equal(t, "Arsenal vs Chelsea", out.Match)
	assert.Equal(t, "Premier League", out.League)
	assert.Equal(t, 1.8, out.ExpectedGoals["home"])
	assert.Equal(t, "52.3%", out.Probabilities["home_win"])
	assert.Equal(t, "24.1%", out.Probabilities["draw"])
	assert.Equal(t, "23.6%", out.Probabilities["away_win"])
	assert.Equal(t, "55.1%", out.OverUnder["over"])
	assert.Equal(t, "44.9%", out.OverUnder["under"])
	assert.Equal(t, "48.0%", out.BTTS["yes"])
	require.Len(t, out.TopScores, 2)
	assert.Equal(t, "2-1 (12.3%)", out.TopScores[0])
	assert.Equal(t, "1-1 (11.1%)", out.TopScores[1])
	assert.Equal(t, result.Matrix, out.ScoreMatrix)
}

func TestToolJSON(t *testing.T) {
	result := toolJSON(map[string]string{"key": "value"})
	require.Len(t, result.Content, 1)
	assert.False(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"key": "value"`)
}

func TestToolError(t *testing.T) {
	result := toolError(assert.AnError)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "error:")
}
