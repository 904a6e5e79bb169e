package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/utils"
)

type SchemaController struct {
	Formatter  pipeline.Formatter
	Thresholds pipeline.Thresholds
	Now        func() time.Time
}

func NewSchemaController(f pipeline.Formatter, th pipeline.Thresholds) *SchemaController {
	return &SchemaController{Formatter: f, Thresholds: th, Now: time.Now}
}

// GetSchema returns the option lists forms are built from, the critical
// thresholds, and the export window the export form starts with.
func (sc *SchemaController) GetSchema(c *gin.Context) {
	start, end := pipeline.MonthToDate(sc.Now(), sc.Formatter.Location)

	utils.RespondJSON(c, http.StatusOK, "Schema", gin.H{
		"schema":     models.CurrentSchema(),
		"thresholds": sc.Thresholds,
		"export_defaults": gin.H{
			"start": start.Format(pipeline.DateLayout),
			"end":   end.Format(pipeline.DateLayout),
		},
		"display_timezone": sc.Formatter.Location.String(),
	})
}
