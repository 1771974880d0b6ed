package core

import (
	"context"
	"testing"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestFetchPlayByPlay(t *testing.T) {
	client := &contract.MockStatsClient{}

	events, err := FetchPlayByPlay(context.Background(), client, "0022300001")
	assert.ErrorIs(t, err, ErrPlayByPlayNotImplemented)
	assert.ErrorContains(t, err, "0022300001")
	assert.Nil(t, events)
	assert.Empty(t, client.Calls)
}
