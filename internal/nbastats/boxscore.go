package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/huangsam/hoopstat/schema"
)

// boxScoreEndpoints maps each variant to its v3 endpoint and payload key.
var boxScoreEndpoints = map[schema.StatsVariant]struct {
	endpoint string
	key      string
}{
	schema.TraditionalVariant: {"boxscoretraditionalv3", "boxScoreTraditional"},
	schema.AdvancedVariant:    {"boxscoreadvancedv3", "boxScoreAdvanced"},
}

// boxScoreV3 is the body shared by the v3 box score payloads.
type boxScoreV3 struct {
	GameID   string         `json:"gameId"`
	HomeTeam boxScoreV3Team `json:"homeTeam"`
	AwayTeam boxScoreV3Team `json:"awayTeam"`
}

type boxScoreV3Team struct {
	TeamID      int                `json:"teamId"`
	TeamCity    string             `json:"teamCity"`
	TeamName    string             `json:"teamName"`
	TeamTricode string             `json:"teamTricode"`
	Players     []boxScoreV3Player `json:"players"`
}

type boxScoreV3Player struct {
	PersonID   int            `json:"personId"`
	FirstName  string         `json:"firstName"`
	FamilyName string         `json:"familyName"`
	PlayerSlug string         `json:"playerSlug"`
	Position   string         `json:"position"`
	Comment    string         `json:"comment"`
	Statistics map[string]any `json:"statistics"`
}

// BoxScore fetches every player row of both teams for one game.
// Rows come back home team first, each team in the service's player order.
func (c *Client) BoxScore(ctx context.Context, gameID string, variant schema.StatsVariant) ([]schema.BoxScoreRow, error) {
	ep, ok := boxScoreEndpoints[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariant, variant)
	}

	body, err := c.get(ctx, ep.endpoint, boxScoreParams(gameID), c.boxScoreThrottle)
	if err != nil {
		return nil, fmt.Errorf("%s box score for game %s: %w", variant, gameID, err)
	}
	return decodeBoxScore(body, ep.key, gameID)
}

// boxScoreParams asks for the whole game, every period and range.
func boxScoreParams(gameID string) url.Values {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("LeagueID", "00")
	params.Set("StartPeriod", "0")
	params.Set("EndPeriod", "0")
	params.Set("StartRange", "0")
	params.Set("EndRange", "0")
	params.Set("RangeType", "0")
	return params
}

// decodeBoxScore flattens a v3 payload into rows. Every numeric statistic
// lands in Stats; "minutes" stays a string so that "" marks a DNP.
func decodeBoxScore(body []byte, key, gameID string) ([]schema.BoxScoreRow, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding box score: %w", err)
	}
	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("box score payload has no %s object", key)
	}

	var bs boxScoreV3
	if err := json.Unmarshal(raw, &bs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if bs.GameID != "" {
		gameID = bs.GameID
	}

	var rows []schema.BoxScoreRow
	for _, team := range []boxScoreV3Team{bs.HomeTeam, bs.AwayTeam} {
		for _, p := range team.Players {
			row := schema.BoxScoreRow{
				GameID:      gameID,
				TeamID:      team.TeamID,
				TeamCity:    team.TeamCity,
				TeamName:    team.TeamName,
				TeamTricode: team.TeamTricode,
				PersonID:    p.PersonID,
				PlayerSlug:  p.PlayerSlug,
				FirstName:   p.FirstName,
				FamilyName:  p.FamilyName,
				Position:    p.Position,
				Comment:     p.Comment,
				Stats:       make(map[string]float64, len(p.Statistics)),
			}
			for name, v := range p.Statistics {
				if name == "minutes" {
					row.Minutes = asString(v)
					continue
				}
				if f := maybe[float64](v); f != nil {
					row.Stats[name] = *f
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
