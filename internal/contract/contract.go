// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/hoopstat/schema"
)

// StatsClient defines the remote stats operations hoopstat consumes.
// This allows the core logic to be tested without reaching stats.nba.com.
type StatsClient interface {
	// LeagueGameFinder returns every game the team played in the season, unsorted,
	// exactly as the remote service lists them. Season is in "YYYY-YY" form.
	LeagueGameFinder(ctx context.Context, teamID int, season string) ([]schema.GameRecord, error)

	// BoxScore returns all player rows of both teams for one game.
	BoxScore(ctx context.Context, gameID string, variant schema.StatsVariant) ([]schema.BoxScoreRow, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking command runs and the games they listed.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data; runErr may be nil
	EndRun(runID int64, endTime time.Time, rows int, runErr error) error

	// RecordGames stores the games listed during a run
	RecordGames(runID int64, games []schema.GameRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every stored run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllGameLogs returns every stored game log row ordered by run and date
	GetAllGameLogs() ([]schema.GameLogRecord, error)

	// Close closes the underlying connection
	Close() error
}
