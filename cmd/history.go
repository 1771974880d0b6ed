package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/iocache"
	"github.com/huangsam/hoopstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads the history backend settings without touching the cache.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history-backend %q", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyStoreSetupWrapper also opens the history store for commands that read it.
func historyStoreSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := historySetupWrapper(cmd, args); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.NoneBackend {
		return errors.New("history is disabled; set --history-backend to sqlite, mysql or postgresql")
	}
	err := iocache.InitStores(iocache.StoreOptions{
		HistoryBackend:   cfg.HistoryBackend,
		HistoryDBConnect: cfg.HistoryDBConnect,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the record of past runs",
	Long: `Manage the run history that records each games and boxscores invocation.

History is off by default. Enable it with --history-backend and a connection
that differs from the cache connection.

Subcommands:
  status  - Show run counts and table sizes
  clear   - Remove all run history
  export  - Write runs and game logs to Parquet files
  migrate - Move the history schema to a version

Examples:
  # Record runs in SQLite and check them
  hoopstat games -s 2023-24 --history-backend sqlite
  hoopstat history status --history-backend sqlite`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all run history",
	Long:    `Delete all recorded runs and game logs. SQLite files are removed; MySQL/PostgreSQL tables are dropped.`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics",
	PreRunE: historyStoreSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the run history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet files",
	Long: `Write the recorded runs and game logs to two Parquet files named after
--output-file: <file>.runs.parquet and <file>.games.parquet.

Examples:
  hoopstat history export --history-backend sqlite -o nuggets`,
	PreRunE: historyStoreSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := iocache.ExecuteHistoryExport(cfg.OutputFile)
		if errors.Is(err, iocache.ErrNoHistory) {
			fmt.Println("No runs recorded yet.")
			return
		}
		if err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs history schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the run history schema",
	Long: `Apply or roll back history schema migrations.

Examples:
  # Migrate to the latest version
  hoopstat history migrate --history-backend sqlite

  # Roll back everything
  hoopstat history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, target); err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
		fmt.Println("History migration completed successfully.")
	},
}
