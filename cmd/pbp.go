package cmd

import (
	"github.com/huangsam/hoopstat/core"
	"github.com/spf13/cobra"
)

// pbpCmd is the play-by-play entry point. Fetching is not implemented yet.
var pbpCmd = &cobra.Command{
	Use:     "pbp",
	Short:   "Fetch play-by-play events (not implemented)",
	Long:    `Fetch play-by-play events for --game-ids. This command currently reports that the feature is not implemented.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecutePlayByPlay(rootCtx, cfg, cacheManager)
	},
}
