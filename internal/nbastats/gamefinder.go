package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/huangsam/hoopstat/schema"
)

const leagueGameFinderEndpoint = "leaguegamefinder"

// gameFinderColumns are the headers a game finder result must carry.
var gameFinderColumns = []string{"SEASON_ID", "TEAM_ID", "GAME_ID", "GAME_DATE"}

// LeagueGameFinder lists every game the team played in the season, in the order
// the service returns them. Index is left at zero for the caller to assign.
func (c *Client) LeagueGameFinder(ctx context.Context, teamID int, season string) ([]schema.GameRecord, error) {
	params := url.Values{}
	params.Set("PlayerOrTeam", "T")
	params.Set("LeagueID", "00")
	params.Set("TeamID", strconv.Itoa(teamID))
	params.Set("Season", season)

	body, err := c.get(ctx, leagueGameFinderEndpoint, params, nil)
	if err != nil {
		return nil, fmt.Errorf("league game finder for team %d season %s: %w", teamID, season, err)
	}
	return decodeGameFinder(body)
}

// decodeGameFinder converts the first result set into game records, locating
// columns by header name.
func decodeGameFinder(body []byte) ([]schema.GameRecord, error) {
	var resp resultSetsResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding league game finder: %w", err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("league game finder returned no result sets")
	}

	rs := resp.ResultSets[0]
	if err := rs.require(gameFinderColumns...); err != nil {
		return nil, err
	}
	idx := rs.columns()

	games := make([]schema.GameRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		games = append(games, schema.GameRecord{
			SeasonID:         asString(cell(row, idx, "SEASON_ID")),
			TeamID:           asInt(cell(row, idx, "TEAM_ID")),
			TeamAbbreviation: asString(cell(row, idx, "TEAM_ABBREVIATION")),
			TeamName:         asString(cell(row, idx, "TEAM_NAME")),
			GameID:           asString(cell(row, idx, "GAME_ID")),
			GameDate:         asString(cell(row, idx, "GAME_DATE")),
			Matchup:          asString(cell(row, idx, "MATCHUP")),
			WL:               asString(cell(row, idx, "WL")),
			Minutes:          asInt(cell(row, idx, "MIN")),
			Points:           asInt(cell(row, idx, "PTS")),
			PlusMinus:        asFloat(cell(row, idx, "PLUS_MINUS")),
		})
	}
	return games, nil
}
