package team

import "strings"

// Team is one entry of a provider's team directory.
type Team struct {
	ID       int64
	Name     string
	Nickname string
	Code     string
	City     string
	Logo     string
}

// Match is the outcome of resolving a free-form team name. When the provider
// returns nothing, Name carries the raw query and ID is nil.
type Match struct {
	Name    string
	ID      *int64
	Matched bool
}

// Unmatched is the sentinel for a search that produced no candidates.
func Unmatched(raw string) Match {
	return Match{Name: raw}
}

// BestMatch picks a team for query from candidates: the first exact
// case-insensitive hit on name or nickname, else the first name containing
// the query, else the first candidate. It never rejects a non-empty list.
func BestMatch(candidates []Team, query string) Match {
	if len(candidates) == 0 {
		return Unmatched(query)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	best, ok := exactMatch(candidates, q)
	if !ok {
		best, ok = partialMatch(candidates, q)
	}
	if !ok {
		best = candidates[0]
	}

	id := best.ID
	return Match{Name: best.Name, ID: &id, Matched: true}
}

func exactMatch(candidates []Team, q string) (Team, bool) {
	for _, t := range candidates {
		if strings.ToLower(t.Name) == q || strings.ToLower(t.Nickname) == q {
			return t, true
		}
	}
	return Team{}, false
}

func partialMatch(candidates []Team, q string) (Team, bool) {
	for _, t := range candidates {
		if strings.Contains(strings.ToLower(t.Name), q) {
			return t, true
		}
	}
	return Team{}, false
}
