package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/parquet"
	"github.com/huangsam/hoopstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// boxScoreCSVHeader lists the identity columns that precede the stat columns.
var boxScoreCSVHeader = []string{
	"index",
	"game_id",
	"team_id",
	"team_city",
	"team_name",
	"team_tricode",
	"person_id",
	"player_slug",
	"first_name",
	"family_name",
	"position",
	"comment",
	"minutes",
}

// statAbbreviations are the table headers of well known statistics.
var statAbbreviations = map[string]string{
	"fieldGoalsMade":               "FGM",
	"fieldGoalsAttempted":          "FGA",
	"fieldGoalsPercentage":         "FG%",
	"threePointersMade":            "3PM",
	"threePointersAttempted":       "3PA",
	"threePointersPercentage":      "3P%",
	"freeThrowsMade":               "FTM",
	"freeThrowsAttempted":          "FTA",
	"freeThrowsPercentage":         "FT%",
	"reboundsOffensive":            "OREB",
	"reboundsDefensive":            "DREB",
	"reboundsTotal":                "REB",
	"assists":                      "AST",
	"steals":                       "STL",
	"blocks":                       "BLK",
	"turnovers":                    "TOV",
	"foulsPersonal":                "PF",
	"points":                       "PTS",
	"plusMinusPoints":              "+/-",
	"offensiveRating":              "ORtg",
	"defensiveRating":              "DRtg",
	"netRating":                    "NetRtg",
	"assistPercentage":             "AST%",
	"assistToTurnover":             "AST/TO",
	"reboundPercentage":            "REB%",
	"effectiveFieldGoalPercentage": "eFG%",
	"trueShootingPercentage":       "TS%",
	"usagePercentage":              "USG%",
	"pace":                         "Pace",
	"PIE":                          "PIE",
}

// statHeader returns the table header of a statistic.
func statHeader(name string) string {
	if abbr, ok := statAbbreviations[name]; ok {
		return abbr
	}
	return name
}

// WriteBoxScoreResults outputs an aggregated box score table, dispatching based on the output format configured.
func WriteBoxScoreResults(table schema.BoxScoreTable, cfg *contract.Config, duration time.Duration) error {
	if table.Rows == nil {
		table.Rows = []schema.BoxScoreRow{}
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoxScoreCSV(w, table)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteBoxScoresParquet(table, path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoxScoreTable(w, table, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeBoxScoreCSV writes every identity and stat column. Missing stats are left empty.
func writeBoxScoreCSV(w io.Writer, table schema.BoxScoreTable) error {
	header := append(append([]string{}, boxScoreCSVHeader...), table.StatColumns...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range table.Rows {
			rec := []string{
				strconv.Itoa(r.Index),
				r.GameID,
				strconv.Itoa(r.TeamID),
				r.TeamCity,
				r.TeamName,
				r.TeamTricode,
				strconv.Itoa(r.PersonID),
				r.PlayerSlug,
				r.FirstName,
				r.FamilyName,
				r.Position,
				r.Comment,
				r.Minutes,
			}
			for _, col := range table.StatColumns {
				if v, ok := r.Stats[col]; ok {
					rec = append(rec, rawStat(v))
				} else {
					rec = append(rec, "")
				}
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBoxScoreTable prints as many stat columns as the terminal width allows.
func writeBoxScoreTable(w io.Writer, bs schema.BoxScoreTable, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	columns := bs.StatColumns
	if limit := maxTableStatColumns(cfg); len(columns) > limit {
		columns = columns[:limit]
	}

	variant := bs.Variant
	if variant == "" {
		variant = schema.TraditionalVariant
	}
	if err := caption(w, cfg, "%s box scores", strings.ToUpper(string(variant[:1]))+string(variant[1:])); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"#", "Game", "Player", "Min"}
	for _, col := range columns {
		headers = append(headers, statHeader(col))
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	games := make(map[string]struct{})
	data := make([][]string, 0, len(bs.Rows))
	for _, r := range bs.Rows {
		games[r.GameID] = struct{}{}
		row := []string{
			strconv.Itoa(r.Index),
			r.GameID,
			playerName(r),
			r.Minutes,
		}
		for _, col := range columns {
			if v, ok := r.Stats[col]; ok {
				row = append(row, formatStat(v, fmtFloat))
			} else {
				row = append(row, "-")
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if hidden := len(bs.StatColumns) - len(columns); hidden > 0 {
		if _, err := fmt.Fprintf(w, "%d more stat columns hidden; use --output csv or json to see all\n", hidden); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d rows from %d games\n", len(bs.Rows), len(games)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// playerName prefers the display name and falls back to the slug.
func playerName(r schema.BoxScoreRow) string {
	name := strings.TrimSpace(r.FirstName + " " + r.FamilyName)
	if name == "" {
		return r.PlayerSlug
	}
	return name
}
