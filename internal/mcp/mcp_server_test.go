package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/hoopstat/internal/contract"
	mcp_internal "github.com/huangsam/hoopstat/internal/mcp"
	"github.com/huangsam/hoopstat/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{
		TeamID:   contract.DefaultTeamID,
		MaxGames: contract.NoGameCap,
		TeamName: schema.DefaultTeamName,
		Variant:  schema.TraditionalVariant,
	}

	// No manager: these calls never reach the stats service
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_Tools(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	for _, name := range []string{"list_games", "get_box_scores", "compute_time_axis", "get_play_by_play"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("list_games missing season", func(t *testing.T) {
		res := callTool(t, "list_games", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "season is required")
	})

	t.Run("list_games malformed season", func(t *testing.T) {
		res := callTool(t, "list_games", map[string]any{"season": "twenty-three"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid parameters")
	})

	t.Run("list_games negative cap", func(t *testing.T) {
		res := callTool(t, "list_games", map[string]any{"season": "2023-24", "max_games": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "max_games cannot be negative")
	})

	t.Run("get_box_scores unknown variant", func(t *testing.T) {
		res := callTool(t, "get_box_scores", map[string]any{"game_ids": []any{"0022300061"}, "variant": "hustle"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), `unknown variant "hustle"`)
	})

	t.Run("get_box_scores without games or season", func(t *testing.T) {
		res := callTool(t, "get_box_scores", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "no --game-ids given")
	})

	t.Run("compute_time_axis length mismatch", func(t *testing.T) {
		res := callTool(t, "compute_time_axis", map[string]any{
			"clocks":  []any{"PT12M00.00S", "PT06M00.00S"},
			"periods": []any{1.0},
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "clock and period counts differ")
	})

	t.Run("compute_time_axis bad clock", func(t *testing.T) {
		res := callTool(t, "compute_time_axis", map[string]any{
			"clocks":  []any{"12:00"},
			"periods": []any{1.0},
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "element 0")
	})

	t.Run("get_play_by_play missing game", func(t *testing.T) {
		res := callTool(t, "get_play_by_play", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "--game-ids is required")
	})
}

func TestMCPServerHandlers_ComputeTimeAxis(t *testing.T) {
	res := callTool(t, "compute_time_axis", map[string]any{
		"clocks":  []any{"PT12M00.00S", "PT05M30.00S", "PT0M0.00S"},
		"periods": []any{1.0, 2.0, 5.0},
	})
	require.False(t, res.IsError, resultText(t, res))

	var points []schema.TimeAxisPoint
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &points))
	require.Len(t, points, 3)
	assert.InDelta(t, 0.0, points[0].ElapsedMinutes, 1e-9)
	assert.InDelta(t, 18.5, points[1].ElapsedMinutes, 1e-9)
	assert.InDelta(t, 60.0, points[2].ElapsedMinutes, 1e-9)
}

func TestMCPServerHandlers_PlayByPlayNotImplemented(t *testing.T) {
	res := callTool(t, "get_play_by_play", map[string]any{"game_id": "0022300061"})
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "0022300061")
	assert.Contains(t, text, "not implemented")
}
