package tools

import (
	"context"
	"fmt"

	"github.com/goalgorithm/mcp/internal/logger"
	"github.com/goalgorithm/mcp/pkg/predict"
	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PredictMatchArgs are the arguments for the predict_match tool.
type PredictMatchArgs struct {
	HomeTeam string `json:"home_team" jsonschema:"Name of the home team, full or partial"`
	AwayTeam string `json:"away_team" jsonschema:"Name of the away team, full or partial"`
	League   string `json:"league,omitempty" jsonschema:"League id, slug or name (defaults to EPL)"`
}

// matchPrediction is the predict_match response shape.
type matchPrediction struct {
	Match         string            `json:"match"`
	League        string            `json:"league"`
	ExpectedGoals map[string]any    `json:"expected_goals"`
	Probabilities map[string]string `json:"probabilities"`
	OverUnder     map[string]string `json:"over_under_2.5"`
	BTTS          map[string]string `json:"btts"`
	TopScores     []string          `json:"top_3_scores"`
	ScoreMatrix   [][]float64       `json:"score_matrix"`
}

// AddPredictMatchTool registers the predict_match tool.
func AddPredictMatchTool(server *mcp.Server, ds *understat.Datasource) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "predict_match",
		Description: "Predict the outcome of a soccer match between two teams using a Poisson model over expected-goals data. Returns win/draw/loss probabilities, over/under 2.5 goals, both-teams-to-score, the most likely scorelines and the full score matrix.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PredictMatchArgs) (*mcp.CallToolResult, any, error) {
		if args.HomeTeam == "" || args.AwayTeam == "" {
			return toolError(fmt.Errorf("home_team and away_team are required")), nil, nil
		}

		leagueQuery := args.League
		if leagueQuery == "" {
			leagueQuery = "EPL"
		}
		league, err := understat.ResolveLeague(leagueQuery)
		if err != nil {
			return toolError(err), nil, nil
		}

		rows, err := ds.GetLeagueData(league.ID)
		if err != nil {
			logger.Error("Failed to load league data", league.Name, err)
			return toolError(fmt.Errorf("could not load %s data: %w", league.Name, err)), nil, nil
		}

		table := tableFromStats(rows)
		avgs := understat.ComputeLeagueAverages(rows)

		result, err := predict.Predict(args.HomeTeam, args.AwayTeam, table, predict.LeagueAverages{
			AvgXGPer90:  avgs.AvgXGPer90,
			AvgXGAPer90: avgs.AvgXGAPer90,
		})
		if err != nil {
			return toolError(err), nil, nil
		}

		logger.Info("Predicted", result.HomeTeam, "vs", result.AwayTeam, "in", league.Name)
		return toolJSON(formatPrediction(result, league)), nil, nil
	})
}

func formatPrediction(result *predict.PredictionResult, league understat.League) matchPrediction {
	scores := make([]string, 0, len(result.TopScores))
	for _, sc := range result.TopScores {
		scores = append(scores, fmt.Sprintf("%d-%d (%s)", sc.Home, sc.Away, percent(sc.Prob*100)))
	}

	return matchPrediction{
		Match:  fmt.Sprintf("%s vs %s", result.HomeTeam, result.AwayTeam),
		League: league.Name,
		ExpectedGoals: map[string]any{
			"home": result.HomeXG,
			"away": result.AwayXG,
		},
		Probabilities: map[string]string{
			"home_win": percent(result.HomeWin),
			"draw":     percent(result.Draw),
			"away_win": percent(result.AwayWin),
		},
		OverUnder: map[string]string{
			"over":  percent(result.Over25),
			"under": percent(result.Under25),
		},
		BTTS: map[string]string{
			"yes": percent(result.BTTSYes),
			"no":  percent(result.BTTSNo),
		},
		TopScores:   scores,
		ScoreMatrix: result.Matrix,
	}
}
