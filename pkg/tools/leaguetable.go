package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/goalgorithm/mcp/internal/logger"
	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetLeagueTableArgs are the arguments for the get_league_table tool.
type GetLeagueTableArgs struct {
	League string `json:"league,omitempty" jsonschema:"League id, slug or name (defaults to EPL)"`
}

type tableRow struct {
	Rank          int     `json:"rank"`
	Team          string  `json:"team"`
	XGPer90       float64 `json:"xg_per90"`
	XGAPer90      float64 `json:"xga_per90"`
	XGTotal       float64 `json:"xg_total"`
	XGATotal      float64 `json:"xga_total"`
	MatchesPlayed int     `json:"matches"`
}

type leagueTable struct {
	League   string                   `json:"league"`
	Season   string                   `json:"season"`
	Teams    []tableRow               `json:"teams"`
	Averages understat.LeagueAverages `json:"league_averages"`
}

// AddLeagueTableTool registers the get_league_table tool.
func AddLeagueTableTool(server *mcp.Server, ds *understat.Datasource) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_league_table",
		Description: "Get the current expected-goals table for a league: each team's attacking and defensive xG per 90 minutes, season totals and matches played, ranked by attacking xG.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetLeagueTableArgs) (*mcp.CallToolResult, any, error) {
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

		teams := make([]tableRow, 0, len(rows))
		for _, row := range rows {
			teams = append(teams, tableRow{
				Team:          row.TeamName,
				XGPer90:       row.XGPer90,
				XGAPer90:      row.XGAPer90,
				XGTotal:       row.XGTotal,
				XGATotal:      row.XGATotal,
				MatchesPlayed: row.MatchesPlayed,
			})
		}
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].XGPer90 > teams[j].XGPer90
		})
		for i := range teams {
			teams[i].Rank = i + 1
		}

		return toolJSON(leagueTable{
			League:   league.Name,
			Season:   understat.SeasonString(understat.CurrentSeason()),
			Teams:    teams,
			Averages: understat.ComputeLeagueAverages(rows),
		}), nil, nil
	})
}
