package pipeline

import (
	"strings"
	"time"
)

// All is the filter value meaning "no constraint". "All Departments" and
// "All Locations" are accepted as well.
const All = "All"

// Record is what the filter and report code needs from a stored entity.
type Record interface {
	// CategoryKey is the department for tasks and the storage class for
	// temperature readings.
	CategoryKey() string
	// AreaKey is the area/equipment for tasks and the location for readings.
	AreaKey() string
	Timestamp() time.Time
}

// Criteria narrows a record set. Start and End are calendar days: only their
// year, month and day are used, and the bounds are laid out in Location.
type Criteria struct {
	Category string
	Area     string
	Start    time.Time
	End      time.Time
	Location *time.Location
}

func unconstrained(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == All || strings.HasPrefix(v, All+" ")
}

func (c Criteria) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// StartBound is 00:00:00 on the start day.
func (c Criteria) StartBound() (time.Time, bool) {
	if c.Start.IsZero() {
		return time.Time{}, false
	}
	y, m, d := c.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc()), true
}

// EndBound is 23:59:59 on the end day, inclusive.
func (c Criteria) EndBound() (time.Time, bool) {
	if c.End.IsZero() {
		return time.Time{}, false
	}
	y, m, d := c.End.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, c.loc()), true
}

func (c Criteria) Matches(r Record) bool {
	if !unconstrained(c.Category) && r.CategoryKey() != c.Category {
		return false
	}
	if !unconstrained(c.Area) && r.AreaKey() != c.Area {
		return false
	}
	ts := r.Timestamp()
	if from, ok := c.StartBound(); ok && ts.Before(from) {
		return false
	}
	if to, ok := c.EndBound(); ok && ts.After(to) {
		return false
	}
	return true
}

// Filter returns the records matching c, in their original order. The input
// slice is never modified.
func Filter[T Record](records []T, c Criteria) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseDay parses a YYYY-MM-DD calendar day. An empty string is the zero time.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// MonthToDate is the default export window: the first of the current month
// through today, both in loc.
func MonthToDate(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	y, m, d := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, loc), time.Date(y, m, d, 0, 0, 0, 0, loc)
}
