package schedule

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/sports-answer/internal/domain/query"
)

const (
	DateLayout      = "2006-01-02"
	DefaultTimezone = "America/Chicago"
)

// Calendar turns relative timeframes into provider dates in a fixed timezone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar loads tz (DefaultTimezone when empty). A nil now uses time.Now.
func NewCalendar(tz string, now func() time.Time) (Calendar, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Calendar{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return NewCalendarIn(loc, now), nil
}

func NewCalendarIn(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Now is the current instant expressed in the calendar's timezone.
func (c Calendar) Now() time.Time {
	now := c.now
	if now == nil {
		now = time.Now
	}
	return now().In(c.Location())
}

// ResolveDate formats today, or the previous calendar day for yesterday.
func (c Calendar) ResolveDate(when query.When) string {
	local := c.Now()
	if when == query.WhenYesterday {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(DateLayout)
}

// ResolveSeason infers the season year a sport's schedule is filed under.
// Football seasons roll over in August and NBA seasons in October; the month
// is read in the calendar's timezone, not UTC.
func (c Calendar) ResolveSeason(sport query.Sport, instant time.Time) int {
	local := instant.In(c.Location())
	year, month := local.Year(), local.Month()

	switch sport {
	case query.SportNFL, query.SportNCAAF:
		if month >= time.August {
			return year
		}
		return year - 1
	case query.SportNBA:
		if month >= time.October {
			return year
		}
		return year - 1
	default:
		return year
	}
}

// CurrentSeason is ResolveSeason evaluated at Now.
func (c Calendar) CurrentSeason(sport query.Sport) int {
	return c.ResolveSeason(sport, c.Now())
}
