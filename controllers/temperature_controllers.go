package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
	"github.com/yeremiapane/kitchenlog/utils"
)

type TemperatureController struct {
	Records    *services.RecordService
	Formatter  pipeline.Formatter
	Thresholds pipeline.Thresholds
}

func NewTemperatureController(records *services.RecordService, f pipeline.Formatter, th pipeline.Thresholds) *TemperatureController {
	return &TemperatureController{Records: records, Formatter: f, Thresholds: th}
}

type temperatureView struct {
	models.TemperatureRecord
	Class              models.StorageClass `json:"class"`
	DisplayTemperature string              `json:"display_temperature"`
	RecordedAtDisplay  string              `json:"recorded_at_display"`
	Critical           bool                `json:"critical"`
}

type locationGroup struct {
	Location string            `json:"location"`
	Records  []temperatureView `json:"records"`
}

type dayGroup struct {
	Date      string          `json:"date"`
	Weekday   string          `json:"weekday"`
	Heading   string          `json:"heading"`
	Count     int             `json:"count"`
	Locations []locationGroup `json:"locations"`
}

type temperatureInput struct {
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Temperature models.Temperature `json:"temperature"`
	Unit        *string            `json:"unit"`
	RecordedAt  string             `json:"recorded_at"`
}

// GetTemperatureRecords lists readings matching ?location=&class=&start=&end=,
// grouped by day (newest first) and then by location.
func (tc *TemperatureController) GetTemperatureRecords(c *gin.Context) {
	criteria, err := criteriaFromQuery(c, "class", "location")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	criteria.Location = tc.Formatter.Location

	filtered := pipeline.Filter(tc.Records.TemperatureRecords(c.Request.Context()), criteria)
	days := pipeline.GroupBy(filtered, pipeline.DayLevel(tc.Formatter), pipeline.LocationLevel())

	out := make([]dayGroup, 0, len(days))
	for _, day := range days {
		dg := dayGroup{
			Date:      day.Key,
			Weekday:   tc.Formatter.Weekday(day.Records[0].RecordedAt),
			Heading:   tc.Formatter.DayHeading(day.Records[0].RecordedAt),
			Count:     len(day.Records),
			Locations: make([]locationGroup, 0, len(day.Children)),
		}
		for _, loc := range day.Children {
			lg := locationGroup{Location: loc.Key, Records: make([]temperatureView, 0, len(loc.Records))}
			for _, r := range loc.Records {
				lg.Records = append(lg.Records, tc.view(r))
			}
			dg.Locations = append(dg.Locations, lg)
		}
		out = append(out, dg)
	}

	utils.RespondJSON(c, http.StatusOK, "Temperature records", gin.H{
		"total": len(filtered),
		"days":  out,
	})
}

func (tc *TemperatureController) view(r models.TemperatureRecord) temperatureView {
	return temperatureView{
		TemperatureRecord:  r,
		Class:              models.ClassifyLocation(r.Location),
		DisplayTemperature: pipeline.FormatTemperature(r),
		RecordedAtDisplay:  tc.Formatter.Timestamp(r.RecordedAt),
		Critical:           tc.Thresholds.IsCritical(r),
	}
}

// CreateTemperatureRecords accepts one reading or an array of readings.
// recorded_at is optional and defaults to the time of insert.
func (tc *TemperatureController) CreateTemperatureRecords(c *gin.Context) {
	inputs, err := decodeBatch[temperatureInput](c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	records := make([]models.TemperatureRecord, 0, len(inputs))
	for _, in := range inputs {
		at, err := parseInstant("recorded_at", in.RecordedAt, tc.Formatter.Location)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		records = append(records, models.TemperatureRecord{
			Name:        in.Name,
			Location:    in.Location,
			Temperature: in.Temperature,
			Unit:        in.Unit,
			RecordedAt:  at,
		})
	}

	if err := tc.Records.CreateTemperatureRecords(c.Request.Context(), records); err != nil {
		respondWriteError(c, err)
		return
	}

	views := make([]temperatureView, 0, len(records))
	for _, r := range records {
		views = append(views, tc.view(r))
	}
	utils.RespondJSON(c, http.StatusCreated, "Temperature records submitted successfully!", views)
}
