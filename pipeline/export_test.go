package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/kitchenlog/models"
)

func TestFormatter(t *testing.T) {
	f := NewFormatter(mustZone(t, "America/Los_Angeles"), "")
	ts := time.Date(2024, 6, 1, 17, 5, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-01 10:05 AM PDT", f.Timestamp(ts))
	assert.Equal(t, "2024-06-01", f.Date(ts))
	assert.Equal(t, "Saturday", f.Weekday(ts))
	assert.Equal(t, "Saturday, 2024-06-01", f.DayHeading(ts))

	// late evening UTC is still the previous day on the west coast
	assert.Equal(t, "Friday, 2024-05-31", f.DayHeading(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "3.5°C", FormatTemperature(reading("Deli Cooler", "3.5", "C")))
	assert.Equal(t, "-4°F", FormatTemperature(reading("Big Freezer", "-4.0", "F")))
	assert.Equal(t, "DEFROST", FormatTemperature(reading("Big Freezer", "defrost", "C")))
	assert.Equal(t, "7", FormatTemperature(reading("Deli Room", "7", "")))
}

func TestRangeSubtitle(t *testing.T) {
	assert.Equal(t, "From: 2024-06-01 To: 2024-06-10", RangeSubtitle(day("2024-06-01"), day("2024-06-10")))
	assert.Equal(t, "To: 2024-06-10", RangeSubtitle(time.Time{}, day("2024-06-10")))
	assert.Equal(t, "", RangeSubtitle(time.Time{}, time.Time{}))
}

func TestToRows_OneRowPerRecord(t *testing.T) {
	f := NewFormatter(time.UTC, "")
	tasks := scenarioTasks()

	rows := ToRows(tasks, TaskColumns(f))
	require.Len(t, rows, len(tasks))
	assert.Equal(t, "Deli", rows[0].Values["Department"])
	assert.Equal(t, "Floors", rows[0].Values["Area/Equipment"])
	assert.Equal(t, "2024-06-15 05:00 PM UTC", rows[0].Values["Cleaning Time"])

	assert.Empty(t, ToRows([]models.CleaningTask{}, TaskColumns(f)))
}

func TestRow_Cells(t *testing.T) {
	r := Row{Values: map[string]string{"a": "1", "b": "2"}}
	assert.Equal(t, []string{"2", "", "1"}, r.Cells([]string{"b", "missing", "a"}))
}

func TestTaskReport(t *testing.T) {
	f := NewFormatter(time.UTC, "")
	c := Criteria{Start: day("2024-06-01"), End: day("2024-06-30")}

	doc, err := TaskReport(scenarioTasks(), c, f)
	require.NoError(t, err)

	assert.Equal(t, TaskReportTitle, doc.Title)
	assert.Equal(t, "From: 2024-06-01 To: 2024-06-30", doc.Subtitle)
	assert.Equal(t, []string{"Department", "Cleaning Time", "Cleaned By", "Area/Equipment", "Cleaning Type", "Comments"}, doc.Columns)
	assert.NotContains(t, doc.TableColumns, "Department")

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Deli Department", doc.Sections[0].Title)
	assert.Equal(t, "Warehouse Department", doc.Sections[1].Title)
	assert.Equal(t, 3, doc.RowCount())
	assert.Len(t, doc.FlatRows(), 3)

	// newest first inside a department
	deli := doc.Sections[0].Rows
	assert.Equal(t, "Floors", deli[0].Values["Area/Equipment"])
	assert.Equal(t, "Grater", deli[1].Values["Area/Equipment"])
}

func TestTaskReport_EmptyIsRefused(t *testing.T) {
	_, err := TaskReport(scenarioTasks(), Criteria{Category: "Bakery"}, NewFormatter(time.UTC, ""))
	assert.True(t, errors.Is(err, ErrNothingToExport))
}

func TestTemperatureReport(t *testing.T) {
	f := NewFormatter(time.UTC, "")
	at := func(d, h int) time.Time { return time.Date(2024, 6, d, h, 0, 0, 0, time.UTC) }

	records := []models.TemperatureRecord{
		withTime(reading("Big Freezer", "-15", "C"), at(2, 9)),
		withTime(reading("Deli Cooler", "3", "C"), at(2, 8)),
		withTime(reading("Big Freezer", "DEFROST", ""), at(1, 9)),
		withTime(reading("Big Freezer", "-20", "C"), at(1, 8)),
	}

	doc, err := TemperatureReport(records, Criteria{}, f, DefaultThresholds)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Sunday, 2024-06-02", doc.Sections[0].Title)
	assert.Equal(t, "Saturday, 2024-06-01", doc.Sections[1].Title)

	june2 := doc.Sections[0]
	require.Len(t, june2.Sections, 2)
	assert.Equal(t, "Big Freezer", june2.Sections[0].Title)
	assert.Equal(t, "Deli Cooler", june2.Sections[1].Title)
	assert.True(t, june2.Sections[0].Rows[0].Critical)
	assert.False(t, june2.Sections[1].Rows[0].Critical)

	flat := doc.FlatRows()
	require.Len(t, flat, len(records))
	assert.Equal(t, "DEFROST", flat[2].Values["Temperature"])
	assert.False(t, flat[2].Critical)
	assert.Equal(t, "Saturday, 2024-06-01", flat[3].Values["Date"])
	assert.Equal(t, []string{"Recorded At", "Name", "Temperature"}, doc.TableColumns)
}

func TestFileNames(t *testing.T) {
	f := NewFormatter(time.UTC, "")
	assert.Equal(t, "Temp_Records_20240602.pdf", TemperatureFileName(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC), f, "pdf"))
	assert.Equal(t, "tasks_by_department.xlsx", TaskFileName("xlsx"))
}

func withTime(r models.TemperatureRecord, ts time.Time) models.TemperatureRecord {
	r.RecordedAt = ts
	return r
}
