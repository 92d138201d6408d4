package game

import (
	"context"
	"encoding/json"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

// Repository reads games and box scores from the sports-data provider.
type Repository interface {
	ListByDate(ctx context.Context, sport query.Sport, leagueID int64, date string) ([]Game, error)
	FetchTeamStats(ctx context.Context, sport query.Sport, gameID int64) (json.RawMessage, error)
}
