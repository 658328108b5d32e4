// Package temporal resolves natural-language date phrases into concrete
// time intervals.
package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Interval is a closed date range in the resolver's zone. End lands on
// the last microsecond of its day, so Contains treats both bounds as
// inclusive.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval, bounds included.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// endOfDayNanos is 23:59:59.999999 expressed in nanoseconds, matching
// the export's microsecond precision.
const endOfDayNanos = 999999000

var (
	monthPattern = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\b(?:\s*(\d{4}))?`)
	yearPattern  = regexp.MustCompile(`\b(20\d{2})\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Resolver turns date phrases into Intervals anchored in a fixed zone.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// NewResolver creates a Resolver for the given zone. A nil location
// means the system local zone.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{
		loc: loc,
		now: time.Now,
	}
}

// WithNow returns a copy using a fixed clock. For tests.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	return &Resolver{loc: r.loc, now: now}
}

// Location returns the resolver's zone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve parses a date phrase out of query. Recognized phrases, in
// precedence order: "this week", "last week", "today", "yesterday",
// a month name with optional year, a bare 20xx year. Returns false
// when the query carries no date phrase.
func (r *Resolver) Resolve(query string) (Interval, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	now := r.now().In(r.loc)

	if strings.Contains(q, "this week") {
		return r.weekOf(now, 0), true
	}
	if strings.Contains(q, "last week") {
		return r.weekOf(now, -7), true
	}
	if strings.Contains(q, "today") {
		return r.dayOf(now), true
	}
	if strings.Contains(q, "yesterday") {
		return r.dayOf(now.AddDate(0, 0, -1)), true
	}

	if m := monthPattern.FindStringSubmatch(q); m != nil {
		month := monthsByName[m[1]]
		year := now.Year()
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		return r.monthInterval(year, month), true
	}

	if m := yearPattern.FindStringSubmatch(q); m != nil {
		year, _ := strconv.Atoi(m[1])
		return r.yearInterval(year), true
	}

	return Interval{}, false
}

// weekOf returns the Monday-to-Sunday week containing now shifted by
// offsetDays.
func (r *Resolver) weekOf(now time.Time, offsetDays int) Interval {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, offsetDays-daysSinceMonday)
	start := startOfDay(monday, r.loc)
	end := endOfDay(monday.AddDate(0, 0, 6), r.loc)
	return Interval{Start: start, End: end}
}

// dayOf returns the full local day containing t.
func (r *Resolver) dayOf(t time.Time) Interval {
	return Interval{Start: startOfDay(t, r.loc), End: endOfDay(t, r.loc)}
}

// monthInterval spans the first through last calendar day of the month
// in the local zone. time.Date normalizes wall-clock times that fall
// inside a DST gap, so the bounds stay on the named days.
func (r *Resolver) monthInterval(year int, month time.Month) Interval {
	first := time.Date(year, month, 1, 0, 0, 0, 0, r.loc)
	last := first.AddDate(0, 1, -1)

	return Interval{
		Start: first,
		End:   endOfDay(last, r.loc),
	}
}

// yearInterval spans January 1 through December 31 in the local zone.
func (r *Resolver) yearInterval(year int) Interval {
	return Interval{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, r.loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, endOfDayNanos, r.loc),
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, endOfDayNanos, loc)
}
