package core

import (
	"context"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
)

// beginRun starts a history run for command. Tracking failures only warn.
// The returned context carries the run ID when tracking is active.
func beginRun(ctx context.Context, mgr contract.CacheManager, command string, cfg *contract.Config) context.Context {
	store := historyStore(mgr)
	if store == nil {
		return ctx
	}
	runID, err := store.BeginRun(command, time.Now(), runParams(cfg))
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return ctx
	}
	return withRunID(ctx, runID)
}

// recordGames stores the games listed during the current run.
func recordGames(ctx context.Context, mgr contract.CacheManager, games []schema.GameRecord) {
	runID, ok := getRunID(ctx)
	store := historyStore(mgr)
	if !ok || store == nil || len(games) == 0 {
		return
	}
	if err := store.RecordGames(runID, games); err != nil {
		contract.LogWarn("Recording listed games failed", err)
	}
}

// endRun completes the current run with its row count and outcome.
func endRun(ctx context.Context, mgr contract.CacheManager, rows int, runErr error) {
	runID, ok := getRunID(ctx)
	store := historyStore(mgr)
	if !ok || store == nil {
		return
	}
	if err := store.EndRun(runID, time.Now(), rows, runErr); err != nil {
		contract.LogWarn("Run tracking completion failed", err)
	}
}

func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// runParams captures the query parameters worth keeping with a run.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"season":    cfg.Season,
		"team_id":   cfg.TeamID,
		"max_games": cfg.MaxGames,
		"team_name": cfg.TeamName,
		"player":    cfg.PlayerSlug,
		"variant":   string(cfg.Variant),
		"game_ids":  len(cfg.GameIDs),
		"delay":     cfg.Delay.String(),
		"output":    string(cfg.Output),
		"cache":     string(cfg.CacheBackend),
		"base_url":  cfg.BaseURL,
	}
}
