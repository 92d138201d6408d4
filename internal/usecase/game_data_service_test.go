package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sports-answer/internal/domain/game"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/riskibarqy/sports-answer/internal/domain/schedule"
	"github.com/riskibarqy/sports-answer/internal/domain/team"
	gamemock "github.com/riskibarqy/sports-answer/internal/mocks/domain/game"
	teammock "github.com/riskibarqy/sports-answer/internal/mocks/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultLeagues = map[query.Sport]int64{
	query.SportNFL:   1,
	query.SportNCAAF: 2,
	query.SportNBA:   12,
}

func fixedCalendar(t *testing.T, year int, month time.Month, day, hour int) schedule.Calendar {
	t.Helper()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	now := time.Date(year, month, day, hour, 0, 0, 0, loc)
	return schedule.NewCalendarIn(loc, func() time.Time { return now })
}

func TestGameDataService_TeamGameStats_Success(t *testing.T) {
	t.Parallel()

	teams := teammock.NewDirectory(t)
	games := gamemock.NewRepository(t)
	svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.March, 2, 9), defaultLeagues, nil, nil)

	teams.
		On("SearchTeams", mock.Anything, query.SportNBA, "suns").
		Return([]team.Team{
			{ID: 24, Name: "Phoenix Suns", Nickname: "Suns"},
			{ID: 99, Name: "Suns Legends"},
		}, nil).
		Once()
	games.
		On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-01").
		Return([]game.Game{
			{ID: 100, Home: game.Side{Name: "Boston Celtics"}, Away: game.Side{Name: "Miami Heat"}},
			{ID: 101, Home: game.Side{Name: "Phoenix Suns"}, Away: game.Side{Name: "Utah Jazz"}, Scores: json.RawMessage(`{"home":{"points":118},"visitors":{"points":110}}`)},
		}, nil).
		Once()
	games.
		On("FetchTeamStats", mock.Anything, query.SportNBA, int64(101)).
		Return(json.RawMessage(`[{"team":{"id":24},"points":118}]`), nil).
		Once()

	got, err := svc.TeamGameStats(context.Background(), query.Entities{Sport: query.SportNBA, Team: "suns", When: query.WhenYesterday})
	require.NoError(t, err)

	assert.Equal(t, int64(101), got.Game.ID)
	assert.Equal(t, "Phoenix Suns", got.Query.TeamName)
	require.NotNil(t, got.Query.TeamID)
	assert.Equal(t, int64(24), *got.Query.TeamID)
	assert.Equal(t, "2025-03-01", got.Query.Date)
	assert.Equal(t, 2024, got.Query.Season)
	assert.JSONEq(t, `{"home":{"points":118},"visitors":{"points":110}}`, string(got.Scores))
	assert.JSONEq(t, `[{"team":{"id":24},"points":118}]`, string(got.Stats))
}

func TestGameDataService_TeamGameStats_UnsupportedSportMakesNoCalls(t *testing.T) {
	t.Parallel()

	teams := teammock.NewDirectory(t)
	games := gamemock.NewRepository(t)
	svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.March, 2, 9), defaultLeagues, nil, nil)

	entities := query.Entities{Sport: query.Sport("mlb"), Team: "cubs", When: query.WhenToday}
	_, err := svc.TeamGameStats(context.Background(), entities)
	require.ErrorIs(t, err, ErrUnsupportedSport)

	got, ok := EntitiesFromError(err)
	require.True(t, ok)
	assert.Equal(t, entities, got)
	assert.Equal(t, StageResolution, StageOf(err))

	teams.AssertNotCalled(t, "SearchTeams", mock.Anything, mock.Anything, mock.Anything)
	games.AssertNotCalled(t, "ListByDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGameDataService_TeamGameStats_MissingLeagueIsUnsupported(t *testing.T) {
	t.Parallel()

	svc := NewGameDataService(teammock.NewDirectory(t), gamemock.NewRepository(t), fixedCalendar(t, 2025, time.March, 2, 9),
		map[query.Sport]int64{query.SportNBA: 12}, nil, nil)

	_, err := svc.TeamGameStats(context.Background(), query.Entities{Sport: query.SportNFL, Team: "bears", When: query.WhenToday})
	require.ErrorIs(t, err, ErrUnsupportedSport)
}

func TestGameDataService_TeamGameStats_EmptySearchKeepsRawName(t *testing.T) {
	t.Parallel()

	teams := teammock.NewDirectory(t)
	games := gamemock.NewRepository(t)
	svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.October, 12, 15), defaultLeagues, nil, nil)

	teams.On("SearchTeams", mock.Anything, query.SportNFL, "chicago bears").Return(nil, nil).Once()
	games.
		On("ListByDate", mock.Anything, query.SportNFL, int64(1), "2025-10-12").
		Return([]game.Game{{ID: 7, Home: game.Side{Name: "Chicago Bears"}, Away: game.Side{Name: "Detroit Lions"}}}, nil).
		Once()
	games.On("FetchTeamStats", mock.Anything, query.SportNFL, int64(7)).Return(json.RawMessage(`[]`), nil).Once()

	got, err := svc.TeamGameStats(context.Background(), query.Entities{Sport: query.SportNFL, Team: "chicago bears", When: query.WhenToday})
	require.NoError(t, err)
	assert.Equal(t, "chicago bears", got.Query.TeamName)
	assert.Nil(t, got.Query.TeamID)
	assert.Equal(t, int64(7), got.Game.ID)
}

func TestGameDataService_TeamGameStats_NoGameFound(t *testing.T) {
	t.Parallel()

	teams := teammock.NewDirectory(t)
	games := gamemock.NewRepository(t)
	svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.March, 2, 9), defaultLeagues, nil, nil)

	teams.On("SearchTeams", mock.Anything, query.SportNBA, "lakers").
		Return([]team.Team{{ID: 17, Name: "Los Angeles Lakers", Nickname: "Lakers"}}, nil).Once()
	games.On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-02").
		Return([]game.Game{{ID: 1, Home: game.Side{Name: "Los Angeles Clippers"}, Away: game.Side{Name: "Denver Nuggets"}}}, nil).Once()

	_, err := svc.TeamGameStats(context.Background(), query.Entities{Sport: query.SportNBA, Team: "lakers", When: query.WhenToday})
	require.ErrorIs(t, err, ErrNoGameFound)
	assert.Equal(t, StageLookup, StageOf(err))
	assert.Contains(t, err.Error(), "Los Angeles Lakers")
	games.AssertNotCalled(t, "FetchTeamStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGameDataService_TeamGameStats_ProviderFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(teams *teammock.Directory, games *gamemock.Repository)
		wantKind string
		stage    Stage
	}{
		{
			name: "games listing down",
			setup: func(teams *teammock.Directory, games *gamemock.Repository) {
				teams.On("SearchTeams", mock.Anything, query.SportNBA, "suns").Return([]team.Team{{ID: 24, Name: "Phoenix Suns"}}, nil).Maybe()
				games.On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-02").Return(nil, errors.New("dial tcp: refused")).Once()
			},
			wantKind: "ProviderUnavailable",
			stage:    StageLookup,
		},
		{
			name: "team search timeout",
			setup: func(teams *teammock.Directory, games *gamemock.Repository) {
				teams.On("SearchTeams", mock.Anything, query.SportNBA, "suns").Return(nil, ErrTimeout).Once()
				games.On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-02").Return([]game.Game{}, nil).Maybe()
			},
			wantKind: "Timeout",
			stage:    StageLookup,
		},
		{
			name: "stats fetch down",
			setup: func(teams *teammock.Directory, games *gamemock.Repository) {
				teams.On("SearchTeams", mock.Anything, query.SportNBA, "suns").Return([]team.Team{{ID: 24, Name: "Phoenix Suns"}}, nil).Once()
				games.On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-02").
					Return([]game.Game{{ID: 5, Home: game.Side{Name: "Phoenix Suns"}, Away: game.Side{Name: "Utah Jazz"}}}, nil).Once()
				games.On("FetchTeamStats", mock.Anything, query.SportNBA, int64(5)).Return(nil, ErrProviderUnavailable).Once()
			},
			wantKind: "ProviderUnavailable",
			stage:    StageStats,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			teams := teammock.NewDirectory(t)
			games := gamemock.NewRepository(t)
			tt.setup(teams, games)
			svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.March, 2, 9), defaultLeagues, nil, nil)

			_, err := svc.TeamGameStats(context.Background(), query.Entities{Sport: query.SportNBA, Team: "suns", When: query.WhenToday})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, Kind(err))
			assert.Equal(t, tt.stage, StageOf(err))
		})
	}
}

func TestGameDataService_TeamGameStats_CancelledCallerIsNotProviderOutage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	teams := teammock.NewDirectory(t)
	games := gamemock.NewRepository(t)
	teams.On("SearchTeams", mock.Anything, query.SportNBA, "suns").Return([]team.Team{{ID: 24, Name: "Phoenix Suns"}}, nil).Once()
	games.On("ListByDate", mock.Anything, query.SportNBA, int64(12), "2025-03-02").
		Return([]game.Game{{ID: 5, Home: game.Side{Name: "Phoenix Suns"}, Away: game.Side{Name: "Utah Jazz"}}}, nil).Once()
	games.On("FetchTeamStats", mock.Anything, query.SportNBA, int64(5)).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, errors.New("read tcp: use of closed connection")).Once()

	svc := NewGameDataService(teams, games, fixedCalendar(t, 2025, time.March, 2, 9), defaultLeagues, nil, nil)
	_, err := svc.TeamGameStats(ctx, query.Entities{Sport: query.SportNBA, Team: "suns", When: query.WhenToday})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Canceled", Kind(err))
	assert.Equal(t, StageStats, StageOf(err))
}
