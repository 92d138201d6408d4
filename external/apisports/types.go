package apisports

import (
	"bytes"
	"encoding/json"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-answer/internal/domain/game"
	"github.com/riskibarqy/sports-answer/internal/domain/team"
)

// envelope is the wrapper every api-sports endpoint returns. errors is an
// empty array on success and an object keyed by field on failure.
type envelope struct {
	Get      string          `json:"get"`
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

func (e envelope) hasErrors() bool {
	raw := bytes.TrimSpace(e.Errors)
	switch string(raw) {
	case "", "null", "[]", "{}":
		return false
	default:
		return true
	}
}

type teamItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Code     string `json:"code"`
	City     string `json:"city"`
	Logo     string `json:"logo"`
}

func (t teamItem) toDomain() team.Team {
	return team.Team{
		ID:       t.ID,
		Name:     strings.TrimSpace(t.Name),
		Nickname: strings.TrimSpace(t.Nickname),
		Code:     t.Code,
		City:     t.City,
		Logo:     t.Logo,
	}
}

type sideItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type statusItem struct {
	Long string `json:"long"`
}

// gameItem decodes both shapes: basketball keeps id, date and status at the
// top level and calls the away side "visitors"; american football nests them
// under "game" and uses "away".
type gameItem struct {
	ID     int64           `json:"id"`
	Date   json.RawMessage `json:"date"`
	Status statusItem      `json:"status"`
	Game   *struct {
		ID     int64           `json:"id"`
		Date   json.RawMessage `json:"date"`
		Status statusItem      `json:"status"`
	} `json:"game"`
	Teams struct {
		Home     sideItem  `json:"home"`
		Away     *sideItem `json:"away"`
		Visitors *sideItem `json:"visitors"`
	} `json:"teams"`
	Scores json.RawMessage `json:"scores"`
}

func (g gameItem) toDomain() game.Game {
	out := game.Game{
		ID:     g.ID,
		Date:   dateString(g.Date),
		Status: g.Status.Long,
		Home:   game.Side{ID: g.Teams.Home.ID, Name: g.Teams.Home.Name},
		Scores: g.Scores,
	}
	if g.Game != nil {
		if g.Game.ID != 0 {
			out.ID = g.Game.ID
		}
		if date := dateString(g.Game.Date); date != "" {
			out.Date = date
		}
		if g.Game.Status.Long != "" {
			out.Status = g.Game.Status.Long
		}
	}

	away := g.Teams.Away
	if away == nil {
		away = g.Teams.Visitors
	}
	if away != nil {
		out.Away = game.Side{ID: away.ID, Name: away.Name}
	}
	return out
}

// dateString accepts a bare string or an object carrying "date" (football)
// or "start" (basketball).
func dateString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var plain string
	if err := sonic.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"date", "start"} {
		if value, ok := obj[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
