package tools

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goalgorithm/mcp/pkg/predict"
	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Shared helpers for the tool handlers. Tool failures are reported
// in-band (IsError) so the client sees them as tool output rather than
// protocol errors.

func toolJSON(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("failed to marshal result: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}

// percent formats a one-decimal percentage value as "64.2%".
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// tableFromStats converts provider rows into the core's ordered table.
func tableFromStats(rows []*understat.TeamStats) predict.TeamTable {
	table := make(predict.TeamTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, predict.TeamEntry{
			Name: row.TeamName,
			Stats: predict.TeamStats{
				XGPer90:       row.XGPer90,
				XGAPer90:      row.XGAPer90,
				XGTotal:       row.XGTotal,
				XGATotal:      row.XGATotal,
				MatchesPlayed: row.MatchesPlayed,
			},
		})
	}
	return table
}
