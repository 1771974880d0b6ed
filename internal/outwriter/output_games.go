package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/parquet"
	"github.com/huangsam/hoopstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// gameCSVHeader lists the game finder columns in CSV order.
var gameCSVHeader = []string{
	"index",
	"season_id",
	"team_id",
	"team_abbreviation",
	"team_name",
	"game_id",
	"game_date",
	"matchup",
	"wl",
	"minutes",
	"points",
	"plus_minus",
}

// WriteGameResults outputs listed games, dispatching based on the output format configured.
func WriteGameResults(games []schema.GameRecord, cfg *contract.Config, duration time.Duration) error {
	if games == nil {
		games = []schema.GameRecord{}
	}
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, games)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGameCSV(w, games, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteGamesParquet(games, path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGameTable(w, games, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeGameCSV writes one line per game after the header.
func writeGameCSV(w io.Writer, games []schema.GameRecord, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, gameCSVHeader, func(cw *csv.Writer) error {
		for _, g := range games {
			rec := []string{
				strconv.Itoa(g.Index),
				g.SeasonID,
				fmt.Sprintf(intFmt, g.TeamID),
				g.TeamAbbreviation,
				g.TeamName,
				g.GameID,
				g.GameDate,
				g.Matchup,
				g.WL,
				fmt.Sprintf(intFmt, g.Minutes),
				fmt.Sprintf(intFmt, g.Points),
				fmtFloat(g.PlusMinus),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeGameTable generates and writes the human-readable table.
func writeGameTable(w io.Writer, games []schema.GameRecord, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Date", "Game", "Matchup", "W/L", "Pts", "+/-"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(games))
	wins, losses := 0, 0
	for _, g := range games {
		switch g.WL {
		case contract.WinValue:
			wins++
		case contract.LossValue:
			losses++
		}
		data = append(data, []string{
			strconv.Itoa(g.Index),
			g.GameDate,
			g.GameID,
			g.Matchup,
			resultLabel(g.WL, cfg),
			strconv.Itoa(g.Points),
			fmtFloat(g.PlusMinus),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Listed %d games (%d-%d)\n", len(games), wins, losses); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
