package cmd

import (
	"github.com/huangsam/hoopstat/core"
	"github.com/spf13/cobra"
)

// gamesCmd lists a team's regular season games.
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List a team's regular season games in date order",
	Long: `List every regular season game a team played in a season.

Games come from the league game finder, sorted by date ascending, with
preseason rows dropped. Rows are numbered from 1 after filtering.

Examples:
  # Nuggets games of the 2023-24 season
  hoopstat games --season 2023-2024

  # First 10 Lakers games as CSV
  hoopstat games -s 2023-24 --team-id 1610612747 -n 10 --output csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteGames(rootCtx, cfg, cacheManager)
	},
}
