package contract

import (
	"strings"
	"testing"
)

// FuzzNormalizeSeason checks that accepted labels always come back in YYYY-YY form
// and that normalizing twice is stable.
func FuzzNormalizeSeason(f *testing.F) {
	for _, seed := range []string{"2023-2024", "2023-24", "1999-00", "", "2023", "x-y", "2023-2025"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, season string) {
		got, err := NormalizeSeason(season)
		if err != nil {
			return
		}
		if len(got) != 7 || !strings.Contains(got, "-") {
			t.Fatalf("NormalizeSeason(%q) = %q, want YYYY-YY", season, got)
		}
		again, err := NormalizeSeason(got)
		if err != nil || again != got {
			t.Fatalf("NormalizeSeason not stable for %q: %q then %q (%v)", season, got, again, err)
		}
	})
}
