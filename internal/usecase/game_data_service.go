package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-answer/internal/domain/game"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/domain/schedule"
	"github.com/riskibarqy/sports-answer/internal/domain/team"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/riskibarqy/sports-answer/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
)

// GameData is one resolved game with its raw scores and team stats.
type GameData struct {
	Query  query.Resolved
	Game   game.Game
	Scores json.RawMessage
	Stats  json.RawMessage
}

type GameDataService struct {
	teams    team.Directory
	games    game.Repository
	calendar schedule.Calendar
	leagues  map[query.Sport]int64
	logger   *logging.Logger
	metrics  *metrics.Recorder
}

func NewGameDataService(
	teams team.Directory,
	games game.Repository,
	calendar schedule.Calendar,
	leagues map[query.Sport]int64,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *GameDataService {
	if logger == nil {
		logger = logging.Default()
	}

	leagueCopy := make(map[query.Sport]int64, len(leagues))
	for sport, id := range leagues {
		leagueCopy[sport] = id
	}

	return &GameDataService{
		teams:    teams,
		games:    games,
		calendar: calendar,
		leagues:  leagueCopy,
		logger:   logger,
		metrics:  recorder,
	}
}

// Resolve derives the provider query for entities without touching the
// network. Sports outside the known set, or without a configured league id,
// are rejected.
func (s *GameDataService) Resolve(entities query.Entities) (query.Resolved, error) {
	if !entities.Sport.Valid() {
		return query.Resolved{}, fmt.Errorf("%w: %s", ErrUnsupportedSport, entities.Sport)
	}
	leagueID, ok := s.leagues[entities.Sport]
	if !ok || leagueID <= 0 {
		return query.Resolved{}, fmt.Errorf("%w: no league configured for %s", ErrUnsupportedSport, entities.Sport)
	}

	return query.Resolved{
		Sport:    entities.Sport,
		Date:     s.calendar.ResolveDate(entities.When),
		Season:   s.calendar.CurrentSeason(entities.Sport),
		LeagueID: leagueID,
		TeamName: entities.Team,
	}, nil
}

// TeamGameStats finds the game the team played on the resolved date and
// fetches its team box score. Errors carry the input entities.
func (s *GameDataService) TeamGameStats(ctx context.Context, entities query.Entities) (GameData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDataService.TeamGameStats")
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if strings.TrimSpace(entities.Team) == "" {
		err = stageError(StageResolution, &entities, fmt.Errorf("%w: team is required", ErrInvalidInput))
		return GameData{}, err
	}

	started := time.Now()
	resolved, err := s.Resolve(entities)
	observeStage(s.metrics, StageResolution, started, err)
	if err != nil {
		err = stageError(StageResolution, &entities, err)
		return GameData{}, err
	}

	started = time.Now()
	found, match, err := s.lookupGame(ctx, resolved)
	observeStage(s.metrics, StageLookup, started, err)
	if err != nil {
		err = stageError(StageLookup, &entities, err)
		return GameData{}, err
	}
	resolved.TeamName = match.Name
	resolved.TeamID = match.ID

	started = time.Now()
	stats, err := s.games.FetchTeamStats(ctx, resolved.Sport, found.ID)
	if err != nil {
		err = providerError(ctx, "fetch team stats", err)
	}
	observeStage(s.metrics, StageStats, started, err)
	if err != nil {
		err = stageError(StageStats, &entities, err)
		return GameData{}, err
	}

	s.logger.InfoContext(ctx, "team game stats resolved",
		"sport", resolved.Sport,
		"date", resolved.Date,
		"season", resolved.Season,
		"team", resolved.TeamName,
		"game_id", found.ID,
		"home", found.IsHome(resolved.TeamName),
	)

	return GameData{
		Query:  resolved,
		Game:   found,
		Scores: found.Scores,
		Stats:  stats,
	}, nil
}

// lookupGame lists the day's games and resolves the canonical team name
// concurrently, then matches them. The first failure cancels the other call.
func (s *GameDataService) lookupGame(ctx context.Context, resolved query.Resolved) (game.Game, team.Match, error) {
	var (
		games []game.Game
		match team.Match
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.games.ListByDate(ctx, resolved.Sport, resolved.LeagueID, resolved.Date)
		if err != nil {
			return providerError(ctx, "list games", err)
		}
		games = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		resolvedTeam, err := s.resolveTeamName(ctx, resolved.Sport, resolved.TeamName)
		if err != nil {
			return err
		}
		match = resolvedTeam
		return nil
	})
	if err := p.Wait(); err != nil {
		return game.Game{}, team.Match{}, err
	}

	found, ok := game.FindByTeam(games, match.Name)
	if !ok {
		return game.Game{}, match, fmt.Errorf("%w: team=%s date=%s", ErrNoGameFound, match.Name, resolved.Date)
	}
	return found, match, nil
}

// resolveTeamName maps the user's team wording onto the provider's name.
// An empty search result is not an error; the raw name is kept.
func (s *GameDataService) resolveTeamName(ctx context.Context, sport query.Sport, raw string) (team.Match, error) {
	candidates, err := s.teams.SearchTeams(ctx, sport, raw)
	if err != nil {
		return team.Match{}, providerError(ctx, "search teams", err)
	}

	match := team.BestMatch(candidates, raw)
	if !match.Matched {
		s.logger.DebugContext(ctx, "team search returned no candidates", "sport", sport, "team", raw)
	}
	return match, nil
}
