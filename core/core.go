// Package core has core logic for listing games, aggregating box scores and normalizing game clocks.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/nbastats"
	"github.com/huangsam/hoopstat/internal/outwriter"
	"github.com/huangsam/hoopstat/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// newStatsClient builds the remote client for a command. Tests replace it.
var newStatsClient = func(cfg *contract.Config, mgr contract.CacheManager) contract.StatsClient {
	return nbastats.NewClientFromConfig(cfg, mgr)
}

// GetGamesResults lists the configured team's games and records the run.
// It is shared by the CLI and the MCP server.
func GetGamesResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.GameRecord, time.Duration, error) {
	start := time.Now()
	if err := contract.ValidateGameQuery(cfg); err != nil {
		return nil, 0, err
	}

	ctx = beginRun(ctx, mgr, "games", cfg)
	games, err := ListGames(ctx, newStatsClient(cfg, mgr), cfg.Season, cfg.TeamID, cfg.MaxGames)
	if err == nil {
		recordGames(ctx, mgr, games)
	}
	endRun(ctx, mgr, len(games), err)
	return games, time.Since(start), err
}

// GetBoxScoresResults aggregates box scores for cfg.GameIDs. When no ids are
// given, the configured team's games are listed first and all of them are used.
func GetBoxScoresResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.BoxScoreTable, time.Duration, error) {
	start := time.Now()
	if len(cfg.GameIDs) == 0 {
		if err := contract.ValidateGameQuery(cfg); err != nil {
			return schema.BoxScoreTable{}, 0, fmt.Errorf("no --game-ids given: %w", err)
		}
	}

	ctx = beginRun(ctx, mgr, "boxscores", cfg)
	table, err := aggregateForConfig(ctx, cfg, mgr)
	endRun(ctx, mgr, table.Len(), err)
	return table, time.Since(start), err
}

func aggregateForConfig(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.BoxScoreTable, error) {
	client := newStatsClient(cfg, mgr)

	gameIDs := cfg.GameIDs
	if len(gameIDs) == 0 {
		games, err := ListGames(ctx, client, cfg.Season, cfg.TeamID, cfg.MaxGames)
		if err != nil {
			return schema.BoxScoreTable{}, err
		}
		recordGames(ctx, mgr, games)
		gameIDs = GameIDs(games)
	}

	opts := BoxScoreOptions{
		Variant:    cfg.Variant,
		TeamName:   cfg.TeamName,
		PlayerSlug: cfg.PlayerSlug,
	}
	if !shouldSuppressHeader(ctx) {
		opts.Progress = printProgress
	}
	return AggregateBoxScores(ctx, client, gameIDs, opts)
}

// printProgress reports aggregation progress on stderr.
func printProgress(done, _ int, _ string) {
	_, _ = fmt.Fprintf(os.Stderr, "Processed gameID: %d\n", done)
}

// GetTimeAxisResults converts the configured clocks and periods into elapsed minutes.
func GetTimeAxisResults(_ context.Context, cfg *contract.Config) ([]schema.TimeAxisPoint, time.Duration, error) {
	start := time.Now()
	if len(cfg.Clocks) == 0 {
		return nil, 0, errors.New("--clocks is required")
	}
	points, err := BuildTimeAxis(cfg.Clocks, cfg.Periods)
	return points, time.Since(start), err
}

// GetPlayByPlayResults requests play-by-play events for every configured game.
func GetPlayByPlayResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.PlayByPlayEvent, error) {
	if len(cfg.GameIDs) == 0 {
		return nil, errors.New("--game-ids is required")
	}
	client := newStatsClient(cfg, mgr)
	var events []schema.PlayByPlayEvent
	for _, gameID := range cfg.GameIDs {
		fetched, err := FetchPlayByPlay(ctx, client, gameID)
		if err != nil {
			return nil, err
		}
		events = append(events, fetched...)
	}
	return events, nil
}

// ExecuteGames lists games and prints them in the configured output format.
// It serves as the main entry point for the 'games' command.
func ExecuteGames(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	games, duration, err := GetGamesResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteGameResults(games, cfg, duration)
}

// ExecuteBoxScores aggregates box scores and prints them in the configured output format.
// It serves as the main entry point for the 'boxscores' command.
func ExecuteBoxScores(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	table, duration, err := GetBoxScoresResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteBoxScoreResults(table, cfg, duration)
}

// ExecuteTimeAxis prints the elapsed-time axis for the configured clocks.
func ExecuteTimeAxis(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	points, duration, err := GetTimeAxisResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteTimeAxisResults(points, cfg, duration)
}

// ExecutePlayByPlay runs the play-by-play stub, which reports that it is not implemented.
func ExecutePlayByPlay(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	_, err := GetPlayByPlayResults(ctx, cfg, mgr)
	return err
}
