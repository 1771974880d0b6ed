package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hoopstat/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readBack reads every row of T from a Parquet file.
func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []schema.RunRecord {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Second)
	duration := int32(4000)
	params := `{"season":"2023-24","team_id":1610612743}`
	msg := "aggregating box scores: status 429"
	return []schema.RunRecord{
		{RunID: 1, Command: "games", StartTime: start, EndTime: &end, DurationMs: &duration, RowsReturned: 82, Succeeded: true, ConfigParams: &params},
		{RunID: 2, Command: "boxscores", StartTime: start.Add(time.Minute), EndTime: &end, DurationMs: &duration, Succeeded: false, ErrorMessage: &msg},
		{RunID: 3, Command: "boxscores", StartTime: start.Add(2 * time.Minute)},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
		leaves  [][]string
	}{
		{"Run", new(Run), []string{"run_id", "command", "start_time", "end_time", "run_duration_ms", "rows_returned", "succeeded", "error_message", "config_params"}, nil},
		{"GameLog", new(GameLog), []string{"run_id", "game_id", "season_id", "team_id", "game_date", "matchup", "wl", "points"}, nil},
		{"Game", new(Game), []string{"index", "season_id", "team_id", "game_id", "game_date", "matchup", "wl", "points", "plus_minus"}, nil},
		{"BoxScore", new(BoxScore), []string{"index", "game_id", "team_name", "player_slug", "minutes", "stats"}, [][]string{
			{"stats", "list", "element", "name"},
			{"stats", "list", "element", "value"},
		}},
		{"TimeAxisPoint", new(TimeAxisPoint), []string{"clock", "period", "elapsed_minutes"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)

			fields := make(map[string]bool, len(s.Fields()))
			for _, f := range s.Fields() {
				fields[f.Name()] = true
			}
			for _, col := range tt.columns {
				assert.True(t, fields[col], "Column %s should exist in schema", col)
			}
			for _, path := range tt.leaves {
				_, ok := s.Lookup(path...)
				assert.True(t, ok, "Leaf %v should exist in schema", path)
			}
		})
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRuns())

	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readBack[Run](t, outputPath)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].Command, readData[i].Command)
		assert.Equal(t, data[i].Succeeded, readData[i].Succeeded)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)
		assert.Equal(t, data[i].EndTime == nil, readData[i].EndTime == nil, "EndTime nullability should match")
		assert.Equal(t, data[i].ErrorMessage, readData[i].ErrorMessage)
		assert.Equal(t, data[i].ConfigParams, readData[i].ConfigParams)
	}
	assert.Nil(t, readData[2].DurationMs)
}

func TestWriteGameLogsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "games.parquet")
	records := []schema.GameLogRecord{
		{RunID: 1, GameID: "0022300061", SeasonID: "22023", TeamID: 1610612743, GameDate: "2023-10-24", Matchup: "DEN vs. LAL", WL: "W", Points: 119},
		{RunID: 1, GameID: "0022300077", SeasonID: "22023", TeamID: 1610612743, GameDate: "2023-10-27", Matchup: "DEN @ MEM", WL: "W", Points: 108},
	}
	data := ConvertGameLogRecords(records)

	require.NoError(t, WriteGameLogsParquet(data, outputPath))

	readData := readBack[GameLog](t, outputPath)
	assert.Equal(t, data, readData)
}

func TestWriteGamesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "list.parquet")
	games := []schema.GameRecord{
		{Index: 1, SeasonID: "22023", TeamID: 1610612743, TeamAbbreviation: "DEN", GameID: "0022300061", GameDate: "2023-10-24", Matchup: "DEN vs. LAL", WL: "W", Minutes: 240, Points: 119, PlusMinus: 12},
	}

	require.NoError(t, WriteGamesParquet(games, outputPath))

	readData := readBack[Game](t, outputPath)
	require.Len(t, readData, 1)
	assert.Equal(t, int32(1), readData[0].Index)
	assert.Equal(t, "0022300061", readData[0].GameID)
	assert.Equal(t, int32(119), readData[0].Points)
	assert.InDelta(t, 12.0, readData[0].PlusMinus, 0.001)
}

func TestWriteBoxScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "box.parquet")
	table := schema.BoxScoreTable{
		Variant:     schema.TraditionalVariant,
		StatColumns: []string{"points", "assists", "reboundsTotal"},
		Rows: []schema.BoxScoreRow{
			{Index: 1, GameID: "0022300061", TeamName: "Nuggets", PlayerSlug: "nikola-jokic", Minutes: "36:12",
				Stats: map[string]float64{"points": 29, "reboundsTotal": 13}},
		},
	}

	require.NoError(t, WriteBoxScoresParquet(table, outputPath))

	readData := readBack[BoxScore](t, outputPath)
	require.Len(t, readData, 1)
	assert.Equal(t, "nikola-jokic", readData[0].PlayerSlug)
	assert.Equal(t, "36:12", readData[0].Minutes)
	assert.Equal(t, []Stat{{Name: "points", Value: 29}, {Name: "reboundsTotal", Value: 13}}, readData[0].Stats)
}

func TestWriteTimeAxisParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "axis.parquet")
	points := []schema.TimeAxisPoint{
		{Clock: "PT12M00.00S", Period: 1, ElapsedMinutes: 0},
		{Clock: "PT0M0.00S", Period: 4, ElapsedMinutes: 48},
	}

	require.NoError(t, WriteTimeAxisParquet(points, outputPath))

	readData := readBack[TimeAxisPoint](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, int32(4), readData[1].Period)
	assert.InDelta(t, 48.0, readData[1].ElapsedMinutes, 1e-9)
}

func TestConvertBoxScoreTable_ColumnOrder(t *testing.T) {
	table := schema.BoxScoreTable{
		StatColumns: []string{"b", "a"},
		Rows:        []schema.BoxScoreRow{{Stats: map[string]float64{"a": 1, "b": 2, "c": 3}}},
	}
	got := ConvertBoxScoreTable(table)
	require.Len(t, got, 1)
	assert.Equal(t, []Stat{{Name: "b", Value: 2}, {Name: "a", Value: 1}}, got[0].Stats)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteGameLogsParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
