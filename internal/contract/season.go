package contract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeason is returned when a season label cannot be parsed.
var ErrInvalidSeason = errors.New("invalid season")

// NormalizeSeason converts "YYYY-YYYY" or "YYYY-YY" into the "YYYY-YY" form
// the stats service expects. The end year must follow the start year.
func NormalizeSeason(season string) (string, error) {
	season = strings.TrimSpace(season)
	start, end, ok := strings.Cut(season, "-")
	if !ok || len(start) != 4 || (len(end) != 2 && len(end) != 4) {
		return "", fmt.Errorf("%w %q: expected YYYY-YYYY or YYYY-YY", ErrInvalidSeason, season)
	}

	startYear, err := strconv.Atoi(start)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidSeason, season, err)
	}
	endNum, err := strconv.Atoi(end)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidSeason, season, err)
	}

	next := startYear + 1
	if len(end) == 4 && endNum != next {
		return "", fmt.Errorf("%w %q: end year must be %d", ErrInvalidSeason, season, next)
	}
	if len(end) == 2 && endNum != next%100 {
		return "", fmt.Errorf("%w %q: end year must be %02d", ErrInvalidSeason, season, next%100)
	}

	return fmt.Sprintf("%04d-%02d", startYear, next%100), nil
}
