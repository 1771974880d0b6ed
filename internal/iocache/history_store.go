package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
)

// Table names for run history.
const (
	runsTable    = "hoopstat_runs"
	gameLogTable = "hoopstat_game_log"
)

// historyTables lists the history tables in dependency order.
var historyTables = []string{runsTable, gameLogTable}

// HistoryStoreImpl records hoopstat runs and the games they listed.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore opens the history store and migrates its schema to the latest version.
// The none backend yields a store that records nothing.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*HistoryStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openSQL(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	// The migrator is not closed since that would close db.
	if err := migrateToLatest(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

func (hs *HistoryStoreImpl) table(name string) string {
	return quoteTableName(name, hs.backend)
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, hs.table(runsTable))
		err = hs.db.QueryRow(query, command, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES (?, ?, ?)`, hs.table(runsTable))
		var result sql.Result
		result, err = hs.db.Exec(query, command, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun stores the end time, duration, row count and outcome of a run.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, rows int, runErr error) error {
	if hs.db == nil {
		return nil
	}

	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, hs.table(runsTable), placeholder(hs.backend, 1))
	start := timeScanner{backend: hs.backend}
	if err := hs.db.QueryRow(selectQuery, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	var durationMs int64
	if startTime != nil {
		durationMs = endTime.Sub(*startTime).Milliseconds()
	}

	succeeded := 1
	var errMsg *string
	if runErr != nil {
		succeeded = 0
		msg := runErr.Error()
		errMsg = &msg
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, rows_returned = %s, succeeded = %s, error_message = %s WHERE run_id = %s`,
		hs.table(runsTable),
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3),
		placeholder(hs.backend, 4), placeholder(hs.backend, 5), placeholder(hs.backend, 6))
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, rows, succeeded, errMsg, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordGames stores the games listed during a run in one transaction.
func (hs *HistoryStoreImpl) RecordGames(runID int64, games []schema.GameRecord) error {
	if hs.db == nil || len(games) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, game_id, season_id, team_id, game_date, matchup, wl, points) VALUES (%s)`,
		hs.table(gameLogTable), placeholderList(hs.backend, 8))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare game log insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, g := range games {
		if _, err := stmt.Exec(runID, g.GameID, g.SeasonID, g.TeamID, g.GameDate, g.Matchup, g.WL, g.Points); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert game %s: %w", g.GameID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game log: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.db == nil {
		return status, nil
	}

	query := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(rows_returned), 0) FROM %s", hs.table(runsTable))
	if err := hs.db.QueryRow(query).Scan(&status.TotalRuns, &status.TotalRows); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: hs.backend}
		lastQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", hs.table(runsTable))
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := timeScanner{backend: hs.backend}
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", hs.table(runsTable))
		if err := hs.db.QueryRow(oldestQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}
	}

	for _, table := range historyTables {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", hs.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns returns every stored run ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, command, start_time, end_time, run_duration_ms, rows_returned, succeeded, error_message, config_params
		FROM %s ORDER BY run_id`, hs.table(runsTable))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var succeeded int
		start := timeScanner{backend: hs.backend}
		end := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.Command, start.dest(), end.dest(), &record.DurationMs,
			&record.RowsReturned, &succeeded, &record.ErrorMessage, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		record.Succeeded = succeeded != 0
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllGameLogs returns every stored game log row ordered by run and date.
func (hs *HistoryStoreImpl) GetAllGameLogs() ([]schema.GameLogRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, game_id, season_id, team_id, game_date, matchup, wl, points
		FROM %s ORDER BY run_id, game_date, game_id`, hs.table(gameLogTable))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.GameLogRecord
	for rows.Next() {
		var (
			record  schema.GameLogRecord
			matchup sql.NullString
			wl      sql.NullString
		)
		if err := rows.Scan(&record.RunID, &record.GameID, &record.SeasonID, &record.TeamID,
			&record.GameDate, &matchup, &wl, &record.Points); err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}
		record.Matchup = matchup.String
		record.WL = wl.String
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game log: %w", err)
	}
	return results, nil
}
