package predict

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// minLeagueAverage floors league averages before they are used as
// divisors. Early-season data can produce averages near zero; the floor
// keeps strengths finite and bounded.
const minLeagueAverage = 0.1

// TeamStats holds a team's aggregate xG numbers as supplied by the stats
// provider. Read-only within this package.
type TeamStats struct {
	XGPer90       float64
	XGAPer90      float64
	XGTotal       float64
	XGATotal      float64
	MatchesPlayed int
}

// LeagueAverages holds league-wide mean per-90 rates.
type LeagueAverages struct {
	AvgXGPer90  float64
	AvgXGAPer90 float64
}

// TeamEntry pairs a canonical team name with its stats.
type TeamEntry struct {
	Name  string
	Stats TeamStats
}

// TeamTable is an insertion-ordered league table. Order matters: partial
// name matches resolve to the first entry in table order, so callers must
// preserve the order the stats provider produced.
type TeamTable []TeamEntry

// ExpectedGoals is the per-match (home, away) expected-goal pair.
type ExpectedGoals struct {
	HomeXG float64
	AwayXG float64
}

// ScoreCandidate is one cell of the score matrix, used for ranking.
type ScoreCandidate struct {
	Home int     `json:"home"`
	Away int     `json:"away"`
	Prob float64 `json:"prob"`
}

// PredictionResult is the full outcome of a match prediction.
type PredictionResult struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	HomeXG float64 `json:"home_xg"`
	AwayXG float64 `json:"away_xg"`

	// Matrix[h][a] is the joint probability of the scoreline h-a.
	Matrix [][]float64 `json:"matrix"`

	// Percentages, rounded to one decimal place.
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
	Over25  float64 `json:"over_25"`
	Under25 float64 `json:"under_25"`
	BTTSYes float64 `json:"btts_yes"`
	BTTSNo  float64 `json:"btts_no"`

	TopScores []ScoreCandidate `json:"top_scores"`
}

// TeamNotFoundError reports which side of a prediction request failed to
// resolve against the league table.
type TeamNotFoundError struct {
	Side  string // "home" or "away"
	Query string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("%s team %q not found in league data", e.Side, e.Query)
}

// FindTeam resolves a free-text team name against the table. Exact
// case-insensitive matches win over partial matches; partial matching is a
// bidirectional substring test. The first match in table order wins.
func FindTeam(query string, table TeamTable) (string, TeamStats, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, entry := range table {
		if strings.ToLower(entry.Name) == q {
			return entry.Name, entry.Stats, true
		}
	}

	for _, entry := range table {
		name := strings.ToLower(entry.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return entry.Name, entry.Stats, true
		}
	}

	return "", TeamStats{}, false
}

// CalcExpectedGoals derives each side's expected goals from attack and
// defense strengths expressed as ratios to the league average:
//
//	homeXG = (homeAttack / leagueXG) * (awayDefense / leagueXGA) * leagueXG
//
// Averages are floored at minLeagueAverage so sparse early-season data
// can never divide by zero. Results are rounded to three decimals.
func CalcExpectedGoals(home, away TeamStats, avgs LeagueAverages) ExpectedGoals {
	avgXG := math.Max(avgs.AvgXGPer90, minLeagueAverage)
	avgXGA := math.Max(avgs.AvgXGAPer90, minLeagueAverage)

	homeAttack := home.XGPer90 / avgXG
	awayDefense := away.XGAPer90 / avgXGA
	homeXG := homeAttack * awayDefense * avgXG

	awayAttack := away.XGPer90 / avgXG
	homeDefense := home.XGAPer90 / avgXGA
	awayXG := awayAttack * homeDefense * avgXG

	return ExpectedGoals{
		HomeXG: roundTo(homeXG, 3),
		AwayXG: roundTo(awayXG, 3),
	}
}

// BuildPredictions forms the joint score matrix from the two per-side
// goal distributions and aggregates it into every derived outcome in a
// single pass over the (MaxGoals+1)^2 cells.
func BuildPredictions(homeProbs, awayProbs []float64) *PredictionResult {
	matrix := make([][]float64, len(homeProbs))
	candidates := make([]ScoreCandidate, 0, len(homeProbs)*len(awayProbs))

	var homeWin, draw, awayWin, over25, bttsYes float64

	for h := range homeProbs {
		row := make([]float64, len(awayProbs))
		for a := range awayProbs {
			prob := homeProbs[h] * awayProbs[a]
			row[a] = roundTo(prob, 6)

			switch {
			case h > a:
				homeWin += prob
			case h == a:
				draw += prob
			default:
				awayWin += prob
			}

			if h+a > 2 {
				over25 += prob
			}
			if h >= 1 && a >= 1 {
				bttsYes += prob
			}

			candidates = append(candidates, ScoreCandidate{Home: h, Away: a, Prob: prob})
		}
		matrix[h] = row
	}

	// Stable sort keeps row-major order for equal probabilities.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Prob > candidates[j].Prob
	})

	top := 3
	if len(candidates) < top {
		top = len(candidates)
	}

	// Complements are taken from the unrounded fractions, not from the
	// rounded percentages, so over+under and yes+no stay at 100.0.
	return &PredictionResult{
		Matrix:    matrix,
		HomeWin:   roundTo(homeWin*100, 1),
		Draw:      roundTo(draw*100, 1),
		AwayWin:   roundTo(awayWin*100, 1),
		Over25:    roundTo(over25*100, 1),
		Under25:   roundTo((1-over25)*100, 1),
		BTTSYes:   roundTo(bttsYes*100, 1),
		BTTSNo:    roundTo((1-bttsYes)*100, 1),
		TopScores: candidates[:top],
	}
}

// Predict resolves both team names and produces the full prediction.
// The home side is checked first; either failure returns a
// *TeamNotFoundError naming the side and query.
func Predict(homeQuery, awayQuery string, table TeamTable, avgs LeagueAverages) (*PredictionResult, error) {
	homeName, homeStats, ok := FindTeam(homeQuery, table)
	if !ok {
		return nil, &TeamNotFoundError{Side: "home", Query: homeQuery}
	}

	awayName, awayStats, ok := FindTeam(awayQuery, table)
	if !ok {
		return nil, &TeamNotFoundError{Side: "away", Query: awayQuery}
	}

	expected := CalcExpectedGoals(homeStats, awayStats, avgs)
	homeProbs := GoalProbabilities(expected.HomeXG)
	awayProbs := GoalProbabilities(expected.AwayXG)

	result := BuildPredictions(homeProbs, awayProbs)
	result.HomeTeam = homeName
	result.AwayTeam = awayName
	result.HomeXG = expected.HomeXG
	result.AwayXG = expected.AwayXG

	return result, nil
}

// roundTo rounds to the given number of decimal places.
func roundTo(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}
