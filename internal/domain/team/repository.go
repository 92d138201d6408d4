package team

import (
	"context"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

// Directory searches a sport's team catalog.
type Directory interface {
	SearchTeams(ctx context.Context, sport query.Sport, search string) ([]Team, error)
}
