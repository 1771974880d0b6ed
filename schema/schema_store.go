package schema

import "time"

// RunRecord represents a row from the hoopstat_runs table.
type RunRecord struct {
	RunID        int64
	Command      string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int32
	RowsReturned int32
	Succeeded    bool
	ErrorMessage *string
	ConfigParams *string
}

// GameLogRecord represents a row from the hoopstat_game_log table.
type GameLogRecord struct {
	RunID    int64
	GameID   string
	SeasonID string
	TeamID   int32
	GameDate string
	Matchup  string
	WL       string
	Points   int32
}
