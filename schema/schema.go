// Package schema has models and constants shared by all parts of hoopstat.
package schema

import (
	"slices"
	"sort"
)

// GameRecord is one game played by a team, as listed by the game finder.
type GameRecord struct {
	Index            int     `json:"index"`
	SeasonID         string  `json:"season_id"`
	TeamID           int     `json:"team_id"`
	TeamAbbreviation string  `json:"team_abbreviation"`
	TeamName         string  `json:"team_name"`
	GameID           string  `json:"game_id"`
	GameDate         string  `json:"game_date"` // YYYY-MM-DD
	Matchup          string  `json:"matchup"`
	WL               string  `json:"wl"`
	Minutes          int     `json:"minutes"`
	Points           int     `json:"points"`
	PlusMinus        float64 `json:"plus_minus"`
}

// BoxScoreRow is one player line in one game.
type BoxScoreRow struct {
	Index       int                `json:"index"`
	GameID      string             `json:"game_id"`
	TeamID      int                `json:"team_id"`
	TeamCity    string             `json:"team_city"`
	TeamName    string             `json:"team_name"`
	TeamTricode string             `json:"team_tricode"`
	PersonID    int                `json:"person_id"`
	PlayerSlug  string             `json:"player_slug"`
	FirstName   string             `json:"first_name"`
	FamilyName  string             `json:"family_name"`
	Position    string             `json:"position"`
	Comment     string             `json:"comment"`
	Minutes     string             `json:"minutes"` // empty means the player did not play
	Stats       map[string]float64 `json:"stats"`
}

// BoxScoreTable is the concatenation of box score rows over many games.
type BoxScoreTable struct {
	Variant     StatsVariant  `json:"variant"`
	StatColumns []string      `json:"stat_columns"`
	Rows        []BoxScoreRow `json:"rows"`
}

// Len returns the number of rows in the table.
func (t BoxScoreTable) Len() int {
	return len(t.Rows)
}

// StatColumnsFor returns the known stat columns of the variant, followed by any
// other keys found in rows sorted by name.
func StatColumnsFor(variant StatsVariant, rows []BoxScoreRow) []string {
	known := KnownStatColumns(variant)
	columns := slices.Clone(known)
	seen := make(map[string]struct{}, len(known))
	for _, c := range known {
		seen[c] = struct{}{}
	}
	var extra []string
	for _, r := range rows {
		for k := range r.Stats {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(columns, extra...)
}

// TimeAxisPoint pairs a countdown clock reading with its absolute elapsed time.
type TimeAxisPoint struct {
	Clock          string  `json:"clock"`
	Period         int     `json:"period"`
	ElapsedMinutes float64 `json:"elapsed_minutes"`
}

// PlayByPlayEvent is a single play-by-play action. No fetcher populates it yet.
type PlayByPlayEvent struct {
	GameID      string `json:"game_id"`
	ActionNum   int    `json:"action_number"`
	Clock       string `json:"clock"`
	Period      int    `json:"period"`
	Description string `json:"description"`
}
