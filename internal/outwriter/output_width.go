package outwriter

import (
	"os"

	"github.com/huangsam/hoopstat/internal/contract"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	minStatColumns   = 4
	statColumnWidth  = 9 // Value plus borders/padding
	boxScoreIDWidth  = 50
)

// getTermWidth returns the width override from flag/env, else the detected
// terminal width, else a conservative default.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth
	}
	return detectedWidth
}

// maxTableStatColumns returns how many stat columns fit next to the identity
// columns of a box score table. CSV, JSON and Parquet always carry all of them.
func maxTableStatColumns(cfg *contract.Config) int {
	available := (getTermWidth(cfg) - boxScoreIDWidth) / statColumnWidth
	if available < minStatColumns {
		return minStatColumns
	}
	return available
}
