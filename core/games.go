package core

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
)

// ListGames returns the team's regular-season games for one season, ordered by
// game date and indexed from 1. A maxGames of 0 or more keeps only the first
// maxGames games; contract.NoGameCap (any negative value) keeps them all.
func ListGames(ctx context.Context, client contract.StatsClient, season string, teamID int, maxGames int) ([]schema.GameRecord, error) {
	normalized, err := contract.NormalizeSeason(season)
	if err != nil {
		return nil, err
	}

	found, err := client.LeagueGameFinder(ctx, teamID, normalized)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	sorted := slices.Clone(found)
	slices.SortStableFunc(sorted, func(a, b schema.GameRecord) int {
		return strings.Compare(a.GameDate, b.GameDate)
	})

	games := make([]schema.GameRecord, 0, len(sorted))
	for _, g := range sorted {
		regular, err := isRegularSeason(g.SeasonID)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.GameID, err)
		}
		if regular {
			games = append(games, g)
		}
	}

	if maxGames >= 0 && len(games) > maxGames {
		games = games[:maxGames]
	}
	for i := range games {
		games[i].Index = i + 1
	}
	return games, nil
}

// isRegularSeason reports whether the encoded season id is above the preseason range.
func isRegularSeason(seasonID string) (bool, error) {
	id, err := strconv.Atoi(strings.TrimSpace(seasonID))
	if err != nil {
		return false, fmt.Errorf("invalid season id %q: %w", seasonID, err)
	}
	return id > schema.RegularSeasonThreshold, nil
}

// GameIDs extracts the game identifiers in order.
func GameIDs(games []schema.GameRecord) []string {
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	return ids
}
