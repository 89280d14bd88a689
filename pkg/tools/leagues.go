package tools

import (
	"context"

	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListLeaguesArgs are the arguments for the list_leagues tool.
type ListLeaguesArgs struct{}

// AddListLeaguesTool registers the list_leagues tool.
func AddListLeaguesTool(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_leagues",
		Description: "List the soccer leagues supported by the prediction tools, with the id, slug and name accepted by the other tools' league argument.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListLeaguesArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(map[string]any{
			"leagues": understat.Leagues,
		}), nil, nil
	})
}
