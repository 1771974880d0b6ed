package iocache

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/parquet"
)

// ErrNoHistory is returned when there are no recorded runs to export.
var ErrNoHistory = errors.New("no run history found to export")

// ExecuteHistoryExport exports the global history store to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return ExportHistory(Manager.GetHistoryStore(), outputFile, os.Stdout)
}

// ExportHistory writes every run to <outputFile>.runs.parquet and every listed
// game to <outputFile>.games.parquet.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	fmt.Fprintf(w, "Total game records: %d\n", status.TableSizes[gameLogTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	gameLogs, err := store.GetAllGameLogs()
	if err != nil {
		return fmt.Errorf("failed to retrieve game logs: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	gamesFile := outputFile + ".games.parquet"
	if err := parquet.WriteGameLogsParquet(parquet.ConvertGameLogRecords(gameLogs), gamesFile); err != nil {
		return fmt.Errorf("failed to write game logs: %w", err)
	}
	fmt.Fprintf(w, "Exported %d game records to: %s\n", len(gameLogs), gamesFile)
	return nil
}
