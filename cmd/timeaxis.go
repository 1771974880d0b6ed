package cmd

import (
	"github.com/huangsam/hoopstat/core"
	"github.com/spf13/cobra"
)

// timeaxisCmd converts game clock readings into elapsed minutes.
var timeaxisCmd = &cobra.Command{
	Use:   "timeaxis",
	Short: "Convert game clock readings to elapsed minutes",
	Long: `Turn period clock readings into minutes elapsed since tipoff.

Each clock is an ISO-8601 duration like PT11M44.00S holding the time left in
its period. Every period, overtime included, counts as 12 minutes.

Examples:
  hoopstat timeaxis --clocks PT12M00.00S,PT06M30.00S,PT00M00.00S --periods 1,2,4`,
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteTimeAxis(rootCtx, cfg, cacheManager)
	},
}
