package cmd

import (
	"github.com/huangsam/hoopstat/core"
	"github.com/spf13/cobra"
)

// boxscoresCmd aggregates player box scores across games.
var boxscoresCmd = &cobra.Command{
	Use:   "boxscores",
	Short: "Aggregate per-player box scores across games",
	Long: `Fetch the box score of each game and combine the player rows into one table.

Games come from --game-ids, or from the games listing of --season/--team-id
when no ids are given. Rows are kept when the team name matches --team-name
and, if set, the player slug matches --player. Players who did not play are
dropped. Requests are spaced by --delay to respect the stats service.

Variants:
  traditional - points, rebounds, assists, shooting splits (default)
  advanced    - ratings, percentages, pace and PIE

Examples:
  # Nuggets box scores for the first 5 games of 2023-24
  hoopstat boxscores -s 2023-24 -n 5

  # Jokic's advanced box scores for two games as JSON
  hoopstat boxscores --game-ids 0022300061,0022300078 --player nikola-jokic \
    --variant advanced --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteBoxScores(rootCtx, cfg, cacheManager)
	},
}
