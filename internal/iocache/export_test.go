package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hoopstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHistory_SQLite(t *testing.T) {
	store := newTestHistoryStore(t)
	start := time.Now()
	runID, err := store.BeginRun("games", start, map[string]any{"season": "2023-24"})
	require.NoError(t, err)
	require.NoError(t, store.RecordGames(runID, sampleGames()))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2, nil))

	outputFile := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExportHistory(store, outputFile, &buf))

	for _, suffix := range []string{".runs.parquet", ".games.parquet"} {
		info, err := os.Stat(outputFile + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 1 runs to: "+outputFile+".runs.parquet")
	assert.Contains(t, buf.String(), "Exported 2 game records to: "+outputFile+".games.parquet")
}

func TestExportHistory_Errors(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExportHistory(new(MockHistoryStore), "", &bytes.Buffer{})
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("nil store", func(t *testing.T) {
		err := ExportHistory(nil, "out", &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("no runs", func(t *testing.T) {
		store := new(MockHistoryStore)
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExportHistory(store, "out", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrNoHistory)
		store.AssertExpectations(t)
	})

	t.Run("query failure", func(t *testing.T) {
		store := new(MockHistoryStore)
		store.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
		store.On("GetAllRuns").Return(nil, errors.New("boom"))

		err := ExportHistory(store, filepath.Join(t.TempDir(), "out"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to retrieve runs")
		store.AssertNotCalled(t, "GetAllGameLogs")
	})
}
