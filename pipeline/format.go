package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/kitchenlog/models"
)

const (
	DefaultDisplayZone     = "America/Los_Angeles"
	DefaultTimestampLayout = "2006-01-02 03:04 PM MST"
	DateLayout             = "2006-01-02"
	DayLayout              = "Monday, 2006-01-02"
)

// Formatter renders instants in a single display zone. Timestamps are stored
// in UTC and only converted here.
type Formatter struct {
	Location        *time.Location
	TimestampLayout string
}

func NewFormatter(loc *time.Location, layout string) Formatter {
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return Formatter{Location: loc, TimestampLayout: layout}
}

func (f Formatter) loc() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f Formatter) Timestamp(t time.Time) string {
	layout := f.TimestampLayout
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return t.In(f.loc()).Format(layout)
}

// Date is the calendar day of t in the display zone.
func (f Formatter) Date(t time.Time) string {
	return t.In(f.loc()).Format(DateLayout)
}

// Weekday names the day of t in the display zone.
func (f Formatter) Weekday(t time.Time) string {
	return t.In(f.loc()).Weekday().String()
}

// DayHeading is the weekday and date, e.g. "Saturday, 2024-06-01".
func (f Formatter) DayHeading(t time.Time) string {
	return t.In(f.loc()).Format(DayLayout)
}

// RangeSubtitle describes an export window. Either end may be zero.
func RangeSubtitle(start, end time.Time) string {
	var parts []string
	if !start.IsZero() {
		parts = append(parts, "From: "+start.Format(DateLayout))
	}
	if !end.IsZero() {
		parts = append(parts, "To: "+end.Format(DateLayout))
	}
	return strings.Join(parts, " ")
}

// FormatTemperature renders a reading with its unit symbol, or DEFROST.
func FormatTemperature(r models.TemperatureRecord) string {
	if r.Temperature.IsDefrost() {
		return string(models.Defrost)
	}
	v, ok := r.Temperature.Float()
	if !ok {
		return string(r.Temperature)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit := r.UnitSymbol(); unit != "" {
		s += "°" + unit
	}
	return s
}
