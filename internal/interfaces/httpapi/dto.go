package httpapi

import (
	"encoding/json"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

type entitiesDTO struct {
	Sport string `json:"sport"`
	Team  string `json:"team"`
	When  string `json:"when"`
}

type resolvedDTO struct {
	Sport    string `json:"sport"`
	Date     string `json:"date"`
	Season   int    `json:"season"`
	LeagueID int64  `json:"leagueId"`
	TeamName string `json:"teamName"`
	TeamID   *int64 `json:"teamId,omitempty"`
}

type statsResponseDTO struct {
	Entities entitiesDTO     `json:"entities"`
	Query    resolvedDTO     `json:"query"`
	GameID   int64           `json:"gameId"`
	Scores   json.RawMessage `json:"scores"`
	Stats    json.RawMessage `json:"stats"`
}

type answerResponseDTO struct {
	Entities entitiesDTO     `json:"entities"`
	Query    resolvedDTO     `json:"query"`
	Scores   json.RawMessage `json:"scores"`
	Stats    json.RawMessage `json:"stats"`
	Summary  string          `json:"summary,omitempty"`
}

type errorDataDTO struct {
	Entities entitiesDTO `json:"entities"`
}

func entitiesToDTO(e query.Entities) entitiesDTO {
	return entitiesDTO{
		Sport: string(e.Sport),
		Team:  e.Team,
		When:  string(e.When),
	}
}

func resolvedToDTO(r query.Resolved) resolvedDTO {
	return resolvedDTO{
		Sport:    string(r.Sport),
		Date:     r.Date,
		Season:   r.Season,
		LeagueID: r.LeagueID,
		TeamName: r.TeamName,
		TeamID:   r.TeamID,
	}
}
