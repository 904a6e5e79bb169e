package pipeline

import (
	"errors"
	"time"

	"github.com/yeremiapane/kitchenlog/models"
)

// ErrNothingToExport is returned instead of an empty document.
var ErrNothingToExport = errors.New("nothing to export for the selected filters")

const (
	TaskReportTitle        = "Task Logs Export"
	TemperatureReportTitle = "Temperature Records Export"
)

func departmentLess(a, b string) bool {
	ra, rb := models.DepartmentRank(a), models.DepartmentRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// DepartmentLevel groups tasks by department in schema order.
func DepartmentLevel() Level[models.CleaningTask] {
	return Level[models.CleaningTask]{
		Key:   func(t models.CleaningTask) string { return t.Department },
		Order: Ascending,
		Less:  departmentLess,
	}
}

// AreaLevel groups tasks by area or equipment, alphabetically.
func AreaLevel() Level[models.CleaningTask] {
	return Level[models.CleaningTask]{
		Key:   func(t models.CleaningTask) string { return t.AreaEquipment },
		Order: Ascending,
	}
}

// DayLevel groups readings by display-zone day, newest first.
func DayLevel(f Formatter) Level[models.TemperatureRecord] {
	return Level[models.TemperatureRecord]{
		Key:   func(r models.TemperatureRecord) string { return f.Date(r.RecordedAt) },
		Order: Descending,
	}
}

func LocationLevel() Level[models.TemperatureRecord] {
	return Level[models.TemperatureRecord]{
		Key: func(r models.TemperatureRecord) string { return r.Location },
	}
}

func TaskColumns(f Formatter) ColumnSpec[models.CleaningTask] {
	return ColumnSpec[models.CleaningTask]{
		Columns: []Column[models.CleaningTask]{
			{Name: "Department", Flat: true, Value: func(t models.CleaningTask) string { return t.Department }},
			{Name: "Cleaning Time", Value: func(t models.CleaningTask) string { return f.Timestamp(t.CleaningTime) }},
			{Name: "Cleaned By", Value: func(t models.CleaningTask) string { return t.CleanedBy }},
			{Name: "Area/Equipment", Value: func(t models.CleaningTask) string { return t.AreaEquipment }},
			{Name: "Cleaning Type", Value: func(t models.CleaningTask) string { return t.CleaningType }},
			{Name: "Comments", Value: func(t models.CleaningTask) string { return t.Comments }},
		},
	}
}

func TemperatureColumns(f Formatter, th Thresholds) ColumnSpec[models.TemperatureRecord] {
	return ColumnSpec[models.TemperatureRecord]{
		Columns: []Column[models.TemperatureRecord]{
			{Name: "Date", Flat: true, Value: func(r models.TemperatureRecord) string { return f.DayHeading(r.RecordedAt) }},
			{Name: "Location", Flat: true, Value: func(r models.TemperatureRecord) string { return r.Location }},
			{Name: "Recorded At", Value: func(r models.TemperatureRecord) string { return f.Timestamp(r.RecordedAt) }},
			{Name: "Name", Value: func(r models.TemperatureRecord) string { return r.Name }},
			{Name: "Temperature", Value: FormatTemperature},
		},
		Critical: th.IsCritical,
	}
}

// TaskReport filters tasks with c and lays them out one section per
// department.
func TaskReport(tasks []models.CleaningTask, c Criteria, f Formatter) (Document, error) {
	filtered := Filter(tasks, c)
	if len(filtered) == 0 {
		return Document{}, ErrNothingToExport
	}

	spec := TaskColumns(f)
	groups := GroupBy(filtered, DepartmentLevel())
	return Document{
		Title:        TaskReportTitle,
		Subtitle:     RangeSubtitle(c.Start, c.End),
		Columns:      spec.Names(),
		TableColumns: spec.TableNames(),
		Sections: BuildSections(groups, spec, func(g Group[models.CleaningTask]) string {
			return g.Key + " Department"
		}),
	}, nil
}

// TemperatureReport filters readings with c and lays them out per day, then
// per location within the day.
func TemperatureReport(records []models.TemperatureRecord, c Criteria, f Formatter, th Thresholds) (Document, error) {
	filtered := Filter(records, c)
	if len(filtered) == 0 {
		return Document{}, ErrNothingToExport
	}

	spec := TemperatureColumns(f, th)
	groups := GroupBy(filtered, DayLevel(f), LocationLevel())
	return Document{
		Title:        TemperatureReportTitle,
		Subtitle:     RangeSubtitle(c.Start, c.End),
		Columns:      spec.Names(),
		TableColumns: spec.TableNames(),
		Sections: BuildSections(groups, spec,
			func(g Group[models.TemperatureRecord]) string { return f.DayHeading(g.Records[0].RecordedAt) },
			nil,
		),
	}, nil
}

// TemperatureFileName follows the Temp_Records_YYYYMMDD pattern for the day
// the export was made.
func TemperatureFileName(now time.Time, f Formatter, ext string) string {
	return "Temp_Records_" + now.In(f.loc()).Format("20060102") + "." + ext
}

func TaskFileName(ext string) string {
	return "tasks_by_department." + ext
}
