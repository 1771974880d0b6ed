package outwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoxScores() schema.BoxScoreTable {
	return schema.BoxScoreTable{
		Variant:     schema.TraditionalVariant,
		StatColumns: []string{"points", "reboundsTotal", "fieldGoalsPercentage"},
		Rows: []schema.BoxScoreRow{
			{Index: 1, GameID: "0022300061", TeamID: 1610612743, TeamCity: "Denver", TeamName: "Nuggets", TeamTricode: "DEN",
				PersonID: 203999, PlayerSlug: "nikola-jokic", FirstName: "Nikola", FamilyName: "Jokic", Position: "C", Minutes: "36:12",
				Stats: map[string]float64{"points": 29, "reboundsTotal": 13, "fieldGoalsPercentage": 0.545}},
			{Index: 2, GameID: "0022300077", TeamID: 1610612743, TeamCity: "Denver", TeamName: "Nuggets", TeamTricode: "DEN",
				PersonID: 1627750, PlayerSlug: "jamal-murray", FirstName: "Jamal", FamilyName: "Murray", Position: "G", Minutes: "30:01",
				Stats: map[string]float64{"points": 21}},
		},
	}
}

func TestWriteBoxScoreCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBoxScoreCSV(&buf, sampleBoxScores()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "minutes,points,reboundsTotal,fieldGoalsPercentage"))
	assert.Equal(t, "1,0022300061,1610612743,Denver,Nuggets,DEN,203999,nikola-jokic,Nikola,Jokic,C,,36:12,29,13,0.545", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "30:01,21,,"), "missing stats should be empty")
}

func TestWriteBoxScoreTable(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	cfg := &contract.Config{Width: 200, CacheBackend: schema.NoneBackend}
	var buf bytes.Buffer
	require.NoError(t, writeBoxScoreTable(&buf, sampleBoxScores(), cfg, fmtFloat, time.Second))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Traditional box scores\n"))
	assert.Contains(t, out, "Nikola Jokic")
	assert.Contains(t, out, "REB")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "Showing 2 rows from 2 games")
	assert.NotContains(t, out, "hidden")
}

func TestWriteBoxScoreTable_HidesColumnsOnNarrowTerminal(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	table := sampleBoxScores()
	table.StatColumns = schema.TraditionalStatColumns
	cfg := &contract.Config{Width: 60}

	var buf bytes.Buffer
	require.NoError(t, writeBoxScoreTable(&buf, table, cfg, fmtFloat, 0))

	hidden := len(schema.TraditionalStatColumns) - minStatColumns
	assert.Contains(t, buf.String(), fmt.Sprintf("%d more stat columns hidden", hidden))
}

func TestWriteBoxScoreResults_JSONFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: filepath.Join(t.TempDir(), "box.json")}
	require.NoError(t, WriteBoxScoreResults(sampleBoxScores(), cfg, 0))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var got schema.BoxScoreTable
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleBoxScores(), got)
}

func TestPlayerName(t *testing.T) {
	assert.Equal(t, "Nikola Jokic", playerName(schema.BoxScoreRow{FirstName: "Nikola", FamilyName: "Jokic"}))
	assert.Equal(t, "nikola-jokic", playerName(schema.BoxScoreRow{PlayerSlug: "nikola-jokic"}))
}

func TestStatHeader(t *testing.T) {
	assert.Equal(t, "PTS", statHeader("points"))
	assert.Equal(t, "customStat", statHeader("customStat"))
}
