package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Game result label constants.
const (
	WinValue  = "W"
	LossValue = "L"
)

// Color variables for console output.
var (
	WinColor    = color.New(color.FgGreen, color.Bold) // WinColor marks a won game.
	LossColor   = color.New(color.FgRed)               // LossColor marks a lost game.
	HeaderColor = color.New(color.FgCyan, color.Bold)  // HeaderColor marks table captions.
)

// GetColorResult returns a colored W/L label for console output (table).
// Anything other than W or L is returned untouched.
func GetColorResult(wl string) string {
	switch wl {
	case WinValue:
		return WinColor.Sprint(wl)
	case LossValue:
		return LossColor.Sprint(wl)
	default:
		return wl
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for response caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hoopstat_cache.db"
	}
	return filepath.Join(homeDir, ".hoopstat_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hoopstat_history.db"
	}
	return filepath.Join(homeDir, ".hoopstat_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
