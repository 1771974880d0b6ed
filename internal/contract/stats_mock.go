package contract

import (
	"context"

	"github.com/huangsam/hoopstat/schema"
	"github.com/stretchr/testify/mock"
)

// MockStatsClient is a testify mock for the StatsClient type.
type MockStatsClient struct {
	mock.Mock
}

var _ StatsClient = &MockStatsClient{} // Compile-time check

// LeagueGameFinder implements the StatsClient interface.
func (m *MockStatsClient) LeagueGameFinder(ctx context.Context, teamID int, season string) ([]schema.GameRecord, error) {
	ret := m.Called(ctx, teamID, season)
	games, _ := ret.Get(0).([]schema.GameRecord)
	return games, ret.Error(1)
}

// BoxScore implements the StatsClient interface.
func (m *MockStatsClient) BoxScore(ctx context.Context, gameID string, variant schema.StatsVariant) ([]schema.BoxScoreRow, error) {
	ret := m.Called(ctx, gameID, variant)
	rows, _ := ret.Get(0).([]schema.BoxScoreRow)
	return rows, ret.Error(1)
}
