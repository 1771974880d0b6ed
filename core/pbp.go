package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
)

// ErrPlayByPlayNotImplemented is returned by FetchPlayByPlay.
var ErrPlayByPlayNotImplemented = errors.New("play-by-play fetch is not implemented")

// FetchPlayByPlay is the play-by-play entry point. It is not implemented yet and
// always fails with ErrPlayByPlayNotImplemented, without calling the client.
func FetchPlayByPlay(_ context.Context, _ contract.StatsClient, gameID string) ([]schema.PlayByPlayEvent, error) {
	return nil, fmt.Errorf("game %s: %w", gameID, ErrPlayByPlayNotImplemented)
}
