package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/export"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
	"github.com/yeremiapane/kitchenlog/utils"
)

type ExportController struct {
	Exports *services.ExportService
}

func NewExportController(exports *services.ExportService) *ExportController {
	return &ExportController{Exports: exports}
}

// ExportTasks downloads ?department=&area=&start=&end=&format= as a file.
func (ec *ExportController) ExportTasks(c *gin.Context) {
	ec.serve(c, "department", "area", ec.Exports.ExportTasks)
}

// ExportTemperatureRecords downloads ?location=&class=&start=&end=&format= as
// a file.
func (ec *ExportController) ExportTemperatureRecords(c *gin.Context) {
	ec.serve(c, "class", "location", ec.Exports.ExportTemperatureRecords)
}

func (ec *ExportController) serve(c *gin.Context, categoryParam, areaParam string, run func(context.Context, services.ExportRequest) (*export.File, error)) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	criteria, err := criteriaFromQuery(c, categoryParam, areaParam)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	file, err := run(c.Request.Context(), services.ExportRequest{Criteria: criteria, Format: format})
	switch {
	case errors.Is(err, pipeline.ErrNothingToExport):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("X-Export-Rows", strconv.Itoa(file.Rows))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
