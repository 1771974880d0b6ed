// Package parquet exports hoopstat results and run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/hoopstat/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents one hoopstat command run.
// This struct maps to the hoopstat_runs database table.
type Run struct {
	RunID        int64      `parquet:"run_id,snappy"`
	Command      string     `parquet:"command,snappy,dict"`
	StartTime    time.Time  `parquet:"start_time,snappy"`
	EndTime      *time.Time `parquet:"end_time,optional,snappy"`
	DurationMs   *int32     `parquet:"run_duration_ms,optional,snappy"`
	RowsReturned int32      `parquet:"rows_returned,snappy"`
	Succeeded    bool       `parquet:"succeeded"`
	ErrorMessage *string    `parquet:"error_message,optional,snappy"`
	ConfigParams *string    `parquet:"config_params,optional,snappy"`
}

// GameLog represents one game listed during a run.
// This struct maps to the hoopstat_game_log database table.
type GameLog struct {
	RunID    int64  `parquet:"run_id,snappy"`
	GameID   string `parquet:"game_id,snappy"`
	SeasonID string `parquet:"season_id,snappy,dict"`
	TeamID   int32  `parquet:"team_id,snappy"`
	GameDate string `parquet:"game_date,snappy"`
	Matchup  string `parquet:"matchup,snappy"`
	WL       string `parquet:"wl,snappy,dict"`
	Points   int32  `parquet:"points,snappy"`
}

// Game is a game finder row as written by --output parquet.
type Game struct {
	Index            int32   `parquet:"index"`
	SeasonID         string  `parquet:"season_id,snappy,dict"`
	TeamID           int64   `parquet:"team_id,snappy"`
	TeamAbbreviation string  `parquet:"team_abbreviation,snappy,dict"`
	TeamName         string  `parquet:"team_name,snappy,dict"`
	GameID           string  `parquet:"game_id,snappy"`
	GameDate         string  `parquet:"game_date,snappy"`
	Matchup          string  `parquet:"matchup,snappy"`
	WL               string  `parquet:"wl,snappy,dict"`
	Minutes          int32   `parquet:"minutes,snappy"`
	Points           int32   `parquet:"points,snappy"`
	PlusMinus        float64 `parquet:"plus_minus,snappy"`
}

// Stat is one named statistic of a box score row.
type Stat struct {
	Name  string  `parquet:"name,dict"`
	Value float64 `parquet:"value"`
}

// BoxScore is a box score row as written by --output parquet. Statistics are
// kept as a list since their names depend on the variant.
type BoxScore struct {
	Index       int32  `parquet:"index"`
	GameID      string `parquet:"game_id,snappy"`
	TeamID      int64  `parquet:"team_id,snappy"`
	TeamCity    string `parquet:"team_city,snappy,dict"`
	TeamName    string `parquet:"team_name,snappy,dict"`
	TeamTricode string `parquet:"team_tricode,snappy,dict"`
	PersonID    int64  `parquet:"person_id,snappy"`
	PlayerSlug  string `parquet:"player_slug,snappy"`
	FirstName   string `parquet:"first_name,snappy"`
	FamilyName  string `parquet:"family_name,snappy"`
	Position    string `parquet:"position,snappy,dict"`
	Comment     string `parquet:"comment,snappy"`
	Minutes     string `parquet:"minutes,snappy"`
	Stats       []Stat `parquet:"stats,list"`
}

// TimeAxisPoint is a clock reading with its elapsed game minutes.
type TimeAxisPoint struct {
	Clock          string  `parquet:"clock,snappy"`
	Period         int32   `parquet:"period"`
	ElapsedMinutes float64 `parquet:"elapsed_minutes"`
}

// writeParquet writes rows of T to outputPath, schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes run history to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGameLogsParquet writes game log history to a Parquet file.
func WriteGameLogsParquet(data []GameLog, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGamesParquet writes listed games to a Parquet file.
func WriteGamesParquet(games []schema.GameRecord, outputPath string) error {
	return writeParquet(ConvertGameRecords(games), outputPath)
}

// WriteBoxScoresParquet writes an aggregated box score table to a Parquet file.
func WriteBoxScoresParquet(table schema.BoxScoreTable, outputPath string) error {
	return writeParquet(ConvertBoxScoreTable(table), outputPath)
}

// WriteTimeAxisParquet writes time axis points to a Parquet file.
func WriteTimeAxisParquet(points []schema.TimeAxisPoint, outputPath string) error {
	rows := make([]TimeAxisPoint, len(points))
	for i, p := range points {
		rows[i] = TimeAxisPoint{Clock: p.Clock, Period: int32(p.Period), ElapsedMinutes: p.ElapsedMinutes}
	}
	return writeParquet(rows, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:        r.RunID,
			Command:      r.Command,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			DurationMs:   r.DurationMs,
			RowsReturned: r.RowsReturned,
			Succeeded:    r.Succeeded,
			ErrorMessage: r.ErrorMessage,
			ConfigParams: r.ConfigParams,
		}
	}
	return result
}

// ConvertGameLogRecords converts schema.GameLogRecord to GameLog for Parquet export.
func ConvertGameLogRecords(records []schema.GameLogRecord) []GameLog {
	result := make([]GameLog, len(records))
	for i, r := range records {
		result[i] = GameLog(r)
	}
	return result
}

// ConvertGameRecords converts listed games for Parquet export.
func ConvertGameRecords(games []schema.GameRecord) []Game {
	result := make([]Game, len(games))
	for i, g := range games {
		result[i] = Game{
			Index:            int32(g.Index),
			SeasonID:         g.SeasonID,
			TeamID:           int64(g.TeamID),
			TeamAbbreviation: g.TeamAbbreviation,
			TeamName:         g.TeamName,
			GameID:           g.GameID,
			GameDate:         g.GameDate,
			Matchup:          g.Matchup,
			WL:               g.WL,
			Minutes:          int32(g.Minutes),
			Points:           int32(g.Points),
			PlusMinus:        g.PlusMinus,
		}
	}
	return result
}

// ConvertBoxScoreTable converts a box score table for Parquet export.
// Stats follow the table's column order; absent statistics are skipped.
func ConvertBoxScoreTable(table schema.BoxScoreTable) []BoxScore {
	result := make([]BoxScore, len(table.Rows))
	for i, r := range table.Rows {
		stats := make([]Stat, 0, len(r.Stats))
		for _, name := range table.StatColumns {
			if v, ok := r.Stats[name]; ok {
				stats = append(stats, Stat{Name: name, Value: v})
			}
		}
		result[i] = BoxScore{
			Index:       int32(r.Index),
			GameID:      r.GameID,
			TeamID:      int64(r.TeamID),
			TeamCity:    r.TeamCity,
			TeamName:    r.TeamName,
			TeamTricode: r.TeamTricode,
			PersonID:    int64(r.PersonID),
			PlayerSlug:  r.PlayerSlug,
			FirstName:   r.FirstName,
			FamilyName:  r.FamilyName,
			Position:    r.Position,
			Comment:     r.Comment,
			Minutes:     r.Minutes,
			Stats:       stats,
		}
	}
	return result
}
