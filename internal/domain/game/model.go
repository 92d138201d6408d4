package game

import (
	"encoding/json"
	"strings"
)

// Side is one participant of a game as reported by the provider.
type Side struct {
	ID   int64
	Name string
}

// Game is a single scheduled or played game on a given date. Scores are kept
// as the provider's raw JSON since basketball and football report them in
// different shapes.
type Game struct {
	ID     int64
	Date   string
	Status string
	Home   Side
	Away   Side
	Scores json.RawMessage
}

// HasTeam reports whether name equals either side's name, ignoring case and
// surrounding whitespace. Substrings do not count.
func (g Game) HasTeam(name string) bool {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(g.Home.Name)) == target ||
		strings.ToLower(strings.TrimSpace(g.Away.Name)) == target
}

// IsHome reports whether name is the home side.
func (g Game) IsHome(name string) bool {
	return strings.EqualFold(strings.TrimSpace(g.Home.Name), strings.TrimSpace(name))
}

// FindByTeam returns the first game in list order that involves teamName.
func FindByTeam(games []Game, teamName string) (Game, bool) {
	for _, g := range games {
		if g.HasTeam(teamName) {
			return g, true
		}
	}
	return Game{}, false
}
