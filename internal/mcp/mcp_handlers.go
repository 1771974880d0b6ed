package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/hoopstat/core"
	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyGameQuery overrides the season, team and cap from tool arguments.
func applyGameQuery(cfg *contract.Config, request mcp.CallToolRequest) error {
	if err := contract.RevalidateSeason(cfg, request.GetString("season", "")); err != nil {
		return err
	}
	if id := request.GetInt("team_id", 0); id != 0 {
		cfg.TeamID = id
	}
	if _, ok := request.GetArguments()["max_games"]; ok {
		n := request.GetInt("max_games", contract.NoGameCap)
		if n < 0 {
			return fmt.Errorf("max_games cannot be negative (received %d)", n)
		}
		cfg.MaxGames = n
	}
	return nil
}

// jsonResult marshals v as the text of a successful tool result.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if request.GetString("season", "") == "" {
		return mcp.NewToolResultError("invalid parameters: season is required"), nil
	}
	if err := applyGameQuery(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	games, _, err := core.GetGamesResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing games failed: %v", err)), nil
	}
	if games == nil {
		games = []schema.GameRecord{}
	}
	return jsonResult(games), nil
}

func (h *toolHandler) handleGetBoxScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyGameQuery(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if ids := request.GetStringSlice("game_ids", nil); len(ids) > 0 {
		cfg.GameIDs = ids
	}
	if name := strings.TrimSpace(request.GetString("team_name", "")); name != "" {
		cfg.TeamName = name
	}
	if player := strings.TrimSpace(request.GetString("player", "")); player != "" {
		cfg.PlayerSlug = player
	}
	if v := request.GetString("variant", ""); v != "" {
		variant := schema.StatsVariant(strings.ToLower(v))
		if _, ok := schema.ValidStatsVariants[variant]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: unknown variant %q", v)), nil
		}
		cfg.Variant = variant
	}

	table, _, err := core.GetBoxScoresResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("box score aggregation failed: %v", err)), nil
	}
	return jsonResult(table), nil
}

func (h *toolHandler) handleComputeTimeAxis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Clocks = request.GetStringSlice("clocks", nil)
	cfg.Periods = request.GetIntSlice("periods", nil)

	points, _, err := core.GetTimeAxisResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("time axis failed: %v", err)), nil
	}
	return jsonResult(points), nil
}

func (h *toolHandler) handleGetPlayByPlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if id := strings.TrimSpace(request.GetString("game_id", "")); id != "" {
		cfg.GameIDs = []string{id}
	} else {
		cfg.GameIDs = nil
	}

	events, err := core.GetPlayByPlayResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("play-by-play failed: %v", err)), nil
	}
	return jsonResult(events), nil
}
