// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the hoopstat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Hoopstat Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("list_games",
		mcp.WithDescription("List a team's regular season games in date order, indexed from 1."),
		mcp.WithString("season", mcp.Description("Season such as '2023-24' or '2023-2024'."), mcp.Required()),
		mcp.WithNumber("team_id", mcp.Description("NBA team ID. Defaults to the configured team (Denver Nuggets).")),
		mcp.WithNumber("max_games", mcp.Description("Keep only the first N games.")),
	), h.handleListGames)

	s.AddTool(mcp.NewTool("get_box_scores",
		mcp.WithDescription("Aggregate one team's player box scores over several games. Games are either given or listed from a season. Requests are throttled so this may take a while."),
		mcp.WithArray("game_ids", mcp.Description("Game IDs to aggregate, e.g. ['0022300061']."), mcp.WithStringItems()),
		mcp.WithString("season", mcp.Description("Season to list games from when game_ids is not given.")),
		mcp.WithNumber("team_id", mcp.Description("NBA team ID used to list games.")),
		mcp.WithNumber("max_games", mcp.Description("Keep only the first N listed games.")),
		mcp.WithString("team_name", mcp.Description("Team name to keep rows for. Defaults to 'Nuggets'.")),
		mcp.WithString("player", mcp.Description("Player slug to keep rows for, e.g. 'nikola-jokic'.")),
		mcp.WithString("variant", mcp.Description("Box score variant. Defaults to 'traditional'."), mcp.Enum("traditional", "advanced")),
	), h.handleGetBoxScores)

	s.AddTool(mcp.NewTool("compute_time_axis",
		mcp.WithDescription("Convert countdown game clocks (e.g. 'PT05M30.00S') and periods into elapsed game minutes."),
		mcp.WithArray("clocks", mcp.Description("ISO-8601 style clock readings."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithArray("periods", mcp.Description("1-based period of each clock reading."), mcp.WithNumberItems(), mcp.Required()),
	), h.handleComputeTimeAxis)

	s.AddTool(mcp.NewTool("get_play_by_play",
		mcp.WithDescription("Fetch the play-by-play events of one game. Not implemented yet."),
		mcp.WithString("game_id", mcp.Description("Game ID."), mcp.Required()),
	), h.handleGetPlayByPlay)

	return s
}

// StartMCPServer starts the hoopstat MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
