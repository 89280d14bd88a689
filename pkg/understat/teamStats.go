package understat

import (
	"math"
	"time"
)

// Compile-time check that TeamStats can be persisted
var _ Persistable = (*TeamStats)(nil)

// TeamStats is one team's aggregated xG statistics for a league season.
// Rows double as the fetch cache: UpdatedAt carries the fetch time and
// Rank preserves the source feed's ordering, which team-name resolution
// depends on for deterministic partial-match tie-breaks.
type TeamStats struct {
	LeagueID string `json:"leagueId" column:"league_id" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season   int    `json:"season" column:"season" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`
	TeamName string `json:"team" column:"team_name" dbtype:"TEXT NOT NULL" primary:"true"`

	Rank int `json:"-" column:"rank" dbtype:"INTEGER DEFAULT 0"`

	XGPer90       float64 `json:"xg_per90" column:"xg_per90" dbtype:"REAL DEFAULT 0.0"`
	XGAPer90      float64 `json:"xga_per90" column:"xga_per90" dbtype:"REAL DEFAULT 0.0"`
	XGTotal       float64 `json:"xg_total" column:"xg_total" dbtype:"REAL DEFAULT 0.0"`
	XGATotal      float64 `json:"xga_total" column:"xga_total" dbtype:"REAL DEFAULT 0.0"`
	MatchesPlayed int     `json:"matches" column:"matches_played" dbtype:"INTEGER DEFAULT 0"`

	UpdatedAt time.Time `json:"-" column:"updated_at" dbtype:"DATETIME"`
}

// LeagueAverages holds the league-wide mean per-90 rates.
type LeagueAverages struct {
	AvgXGPer90  float64 `json:"avg_xg_per90"`
	AvgXGAPer90 float64 `json:"avg_xga_per90"`
}

func (ts *TeamStats) GetTableName() string {
	return "team_stats"
}

func (ts *TeamStats) GetPrimaryKey() map[string]any {
	return map[string]any{
		"league_id": ts.LeagueID,
		"season":    ts.Season,
		"team_name": ts.TeamName,
	}
}

func (ts *TeamStats) BeforeSave() error {
	if ts.UpdatedAt.IsZero() {
		ts.UpdatedAt = time.Now()
	}
	return nil
}

// teamSeason mirrors one entry of understat's team feed: a display title
// plus one history record per match played.
type teamSeason struct {
	Title   string        `json:"title"`
	History []matchRecord `json:"history"`
}

type matchRecord struct {
	XG  float64 `json:"xG"`
	XGA float64 `json:"xGA"`
}

// AggregateTeamStats folds per-match xG history into season totals and
// per-90 rates, preserving the feed order. Teams without a title or
// without history are skipped.
func AggregateTeamStats(teams []teamSeason, leagueID string, season int) []*TeamStats {
	now := time.Now()
	result := make([]*TeamStats, 0, len(teams))

	for _, team := range teams {
		if team.Title == "" || len(team.History) == 0 {
			continue
		}

		var totalXG, totalXGA float64
		for _, match := range team.History {
			totalXG += match.XG
			totalXGA += match.XGA
		}
		mp := len(team.History)

		result = append(result, &TeamStats{
			LeagueID:      leagueID,
			Season:        season,
			TeamName:      team.Title,
			Rank:          len(result),
			XGPer90:       roundTo(totalXG/float64(mp), Config.Per90Precision),
			XGAPer90:      roundTo(totalXGA/float64(mp), Config.Per90Precision),
			XGTotal:       roundTo(totalXG, Config.Per90Precision),
			XGATotal:      roundTo(totalXGA, Config.Per90Precision),
			MatchesPlayed: mp,
			UpdatedAt:     now,
		})
	}

	return result
}

// ComputeLeagueAverages returns the mean per-90 xG and xGA over all teams,
// falling back to the configured baseline when the table is empty.
func ComputeLeagueAverages(teams []*TeamStats) LeagueAverages {
	if len(teams) == 0 {
		return LeagueAverages{
			AvgXGPer90:  Config.FallbackAverage,
			AvgXGAPer90: Config.FallbackAverage,
		}
	}

	var totalXG, totalXGA float64
	for _, ts := range teams {
		totalXG += ts.XGPer90
		totalXGA += ts.XGAPer90
	}
	count := float64(len(teams))

	return LeagueAverages{
		AvgXGPer90:  roundTo(totalXG/count, Config.AveragePrecision),
		AvgXGAPer90: roundTo(totalXGA/count, Config.AveragePrecision),
	}
}

// roundTo rounds to the given number of decimal places.
func roundTo(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}
