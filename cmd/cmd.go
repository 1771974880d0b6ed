// Package cmd defines the command-line interface for hoopstat.
package cmd

import (
	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(boxscoresCmd)
	rootCmd.AddCommand(timeaxisCmd)
	rootCmd.AddCommand(pbpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("season", "s", "", "Season as YYYY-YYYY or YYYY-YY (e.g. 2023-2024)")
	rootCmd.PersistentFlags().Int("team-id", contract.DefaultTeamID, "NBA team ID used to list games")
	rootCmd.PersistentFlags().IntP("max-games", "n", contract.NoGameCap, "Keep only the first N games (-1 = all)")
	rootCmd.PersistentFlags().String("game-ids", "", "Comma-separated game IDs (skips game listing)")
	rootCmd.PersistentFlags().String("delay", contract.DefaultDelay.String(), "Minimum spacing between box score requests")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout of each stats.nba.com request")
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Base URL of the stats service")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql/redis caches (e.g., redis://localhost:6379/0)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "Maximum age of a cached response (0 = never expire)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of boxscoresCmd to Viper
	boxscoresCmd.Flags().String("team-name", schema.DefaultTeamName, "Keep rows whose team name matches exactly")
	boxscoresCmd.Flags().String("player", "", "Keep rows of this player slug only (e.g. nikola-jokic)")
	boxscoresCmd.Flags().String("variant", string(schema.TraditionalVariant), "Box score variant: traditional or advanced")
	if err := viper.BindPFlags(boxscoresCmd.Flags()); err != nil {
		contract.LogFatal("Error binding boxscores flags", err)
	}

	// Bind all flags of timeaxisCmd to Viper
	timeaxisCmd.Flags().String("clocks", "", "Comma-separated clock readings (e.g. PT11M44.00S,PT05M30.00S)")
	timeaxisCmd.Flags().String("periods", "", "Comma-separated periods, one per clock")
	if err := viper.BindPFlags(timeaxisCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeaxis flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
