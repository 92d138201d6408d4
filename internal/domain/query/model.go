package query

import "strings"

// Sport is one of the league codes the pipeline knows how to resolve.
type Sport string

const (
	SportNBA   Sport = "nba"
	SportNFL   Sport = "nfl"
	SportNCAAF Sport = "ncaaf"

	DefaultSport = SportNFL
)

// When is the relative timeframe a question refers to.
type When string

const (
	WhenToday     When = "today"
	WhenYesterday When = "yesterday"

	DefaultWhen = WhenToday
)

var sportSynonyms = map[string]Sport{
	"college football": SportNCAAF,
	"ncaa football":    SportNCAAF,
	"cfb":              SportNCAAF,
	"basketball":       SportNBA,
	"football":         SportNFL,
}

// Sports lists the known league codes in a stable order.
func Sports() []Sport {
	return []Sport{SportNBA, SportNFL, SportNCAAF}
}

func (s Sport) Valid() bool {
	switch s {
	case SportNBA, SportNFL, SportNCAAF:
		return true
	default:
		return false
	}
}

func (s Sport) String() string {
	return string(s)
}

func (w When) Valid() bool {
	return w == WhenToday || w == WhenYesterday
}

func (w When) String() string {
	return string(w)
}

// Entities is the normalized {sport, team, when} triple extracted from a question.
type Entities struct {
	Sport Sport
	Team  string
	When  When
}

// Complete reports whether every field is populated.
func (e Entities) Complete() bool {
	return e.Sport != "" && e.Team != "" && e.When != ""
}

// Normalize returns e passed through the same rules as NormalizeFields.
func (e Entities) Normalize() Entities {
	return NormalizeFields(string(e.Sport), e.Team, string(e.When))
}

// NormalizeFields cleans raw model output into Entities. Unknown sports fall
// back to DefaultSport and unknown timeframes to DefaultWhen; the team is only
// lower-cased and trimmed.
func NormalizeFields(sport, team, when string) Entities {
	return Entities{
		Sport: NormalizeSport(sport),
		Team:  clean(team),
		When:  NormalizeWhen(when),
	}
}

func NormalizeSport(raw string) Sport {
	if sport, ok := ParseSport(raw); ok {
		return sport
	}
	return DefaultSport
}

// ParseSport maps a code or synonym to a Sport without falling back to the
// default. The bool is false for anything unrecognized.
func ParseSport(raw string) (Sport, bool) {
	value := clean(raw)
	if mapped, ok := sportSynonyms[value]; ok {
		return mapped, true
	}
	if candidate := Sport(value); candidate.Valid() {
		return candidate, true
	}
	return Sport(value), false
}

func NormalizeWhen(raw string) When {
	if candidate := When(clean(raw)); candidate.Valid() {
		return candidate
	}
	return DefaultWhen
}

func clean(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Resolved is the deterministic lookup plan derived from Entities.
type Resolved struct {
	Sport    Sport
	Date     string
	Season   int
	LeagueID int64
	TeamName string
	TeamID   *int64
}
