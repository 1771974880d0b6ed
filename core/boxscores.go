package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/nbastats"
	"github.com/huangsam/hoopstat/schema"
)

// ProgressFunc is called after each game is processed. done is 1-based.
type ProgressFunc func(done, total int, gameID string)

// BoxScoreOptions controls how AggregateBoxScores fetches and filters rows.
type BoxScoreOptions struct {
	Variant    schema.StatsVariant
	TeamName   string // exact match; empty means schema.DefaultTeamName
	PlayerSlug string // exact match; empty keeps every player
	Delay      time.Duration // spacing between fetches; use 0 when the client throttles itself
	Progress   ProgressFunc
}

// DefaultBoxScoreOptions returns the traditional Nuggets aggregation with a 2s delay.
func DefaultBoxScoreOptions() BoxScoreOptions {
	return BoxScoreOptions{
		Variant:  schema.TraditionalVariant,
		TeamName: schema.DefaultTeamName,
		Delay:    contract.DefaultDelay,
	}
}

// AggregateBoxScores fetches the box score of every game in order, keeps the rows
// that pass FilterBoxScoreRows and concatenates them into one table indexed from 1.
// Any fetch failure aborts the aggregation and no partial table is returned.
func AggregateBoxScores(ctx context.Context, client contract.StatsClient, gameIDs []string, opts BoxScoreOptions) (schema.BoxScoreTable, error) {
	if opts.Variant == "" {
		opts.Variant = schema.TraditionalVariant
	}
	if opts.TeamName == "" {
		opts.TeamName = schema.DefaultTeamName
	}

	throttle := nbastats.NewThrottle(opts.Delay)
	rows := make([]schema.BoxScoreRow, 0)
	for i, gameID := range gameIDs {
		if err := throttle.Wait(ctx); err != nil {
			return schema.BoxScoreTable{}, fmt.Errorf("waiting to fetch game %s: %w", gameID, err)
		}

		fetched, err := client.BoxScore(ctx, gameID, opts.Variant)
		if err != nil {
			return schema.BoxScoreTable{}, fmt.Errorf("aggregating box scores: %w", err)
		}
		rows = append(rows, FilterBoxScoreRows(fetched, gameID, opts.TeamName, opts.PlayerSlug)...)

		if opts.Progress != nil {
			opts.Progress(i+1, len(gameIDs), gameID)
		}
	}

	for i := range rows {
		rows[i].Index = i + 1
	}
	return schema.BoxScoreTable{
		Variant:     opts.Variant,
		StatColumns: schema.StatColumnsFor(opts.Variant, rows),
		Rows:        rows,
	}, nil
}

// FilterBoxScoreRows stamps gameID onto every row, then keeps the rows of the
// named team, of the named player when playerSlug is set, and with a non-empty
// minutes field.
func FilterBoxScoreRows(rows []schema.BoxScoreRow, gameID, teamName, playerSlug string) []schema.BoxScoreRow {
	kept := make([]schema.BoxScoreRow, 0, len(rows))
	for _, row := range rows {
		row.GameID = gameID
		if row.TeamName != teamName {
			continue
		}
		if playerSlug != "" && row.PlayerSlug != playerSlug {
			continue
		}
		if row.Minutes == "" {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
