package iocache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hoopstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleGames() []schema.GameRecord {
	return []schema.GameRecord{
		{Index: 1, SeasonID: "22023", TeamID: 1610612743, GameID: "0022300061", GameDate: "2023-10-24", Matchup: "DEN vs. LAL", WL: "W", Points: 119},
		{Index: 2, SeasonID: "22023", TeamID: 1610612743, GameID: "0022300077", GameDate: "2023-10-27", Matchup: "DEN @ MEM", WL: "W", Points: 108},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun("games", time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordGames(runID, sampleGames()))
	assert.NoError(t, store.EndRun(runID, time.Now(), 2, nil))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}

func TestHistoryStore_RunLifecycle(t *testing.T) {
	store := newTestHistoryStore(t)
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun("games", start, map[string]any{"season": "2023-24", "team_id": 1610612743})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, store.RecordGames(runID, sampleGames()))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 2, nil))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "games", run.Command)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(start.Add(1500*time.Millisecond)))
	require.NotNil(t, run.DurationMs)
	assert.Equal(t, int32(1500), *run.DurationMs)
	assert.Equal(t, int32(2), run.RowsReturned)
	assert.True(t, run.Succeeded)
	assert.Nil(t, run.ErrorMessage)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"season":"2023-24","team_id":1610612743}`, *run.ConfigParams)

	logs, err := store.GetAllGameLogs()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, schema.GameLogRecord{
		RunID: 1, GameID: "0022300061", SeasonID: "22023", TeamID: 1610612743,
		GameDate: "2023-10-24", Matchup: "DEN vs. LAL", WL: "W", Points: 119,
	}, logs[0])
	assert.Equal(t, "0022300077", logs[1].GameID)
}

func TestHistoryStore_FailedRun(t *testing.T) {
	store := newTestHistoryStore(t)
	start := time.Now()

	runID, err := store.BeginRun("boxscores", start, nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 0, errors.New("status 429")))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Succeeded)
	require.NotNil(t, runs[0].ErrorMessage)
	assert.Equal(t, "status 429", *runs[0].ErrorMessage)
}

func TestHistoryStore_UnfinishedRun(t *testing.T) {
	store := newTestHistoryStore(t)

	_, err := store.BeginRun("games", time.Now(), nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].DurationMs)
	assert.False(t, runs[0].Succeeded)
}

func TestHistoryStore_EndRunUnknownID(t *testing.T) {
	store := newTestHistoryStore(t)
	assert.Error(t, store.EndRun(42, time.Now(), 0, nil))
}

func TestHistoryStore_DuplicateGameRollsBack(t *testing.T) {
	store := newTestHistoryStore(t)

	runID, err := store.BeginRun("games", time.Now(), nil)
	require.NoError(t, err)

	games := sampleGames()
	games = append(games, games[0])
	assert.Error(t, store.RecordGames(runID, games))

	logs, err := store.GetAllGameLogs()
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store := newTestHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, map[string]int64{runsTable: 0, gameLogTable: 0}, status.TableSizes)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, command := range []string{"games", "boxscores"} {
		start := first.Add(time.Duration(i) * time.Hour)
		runID, err := store.BeginRun(command, start, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordGames(runID, sampleGames()))
		require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2+i, nil))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, 5, status.TotalRows)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(first.Add(time.Hour)))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(4), status.TableSizes[gameLogTable])
}
