package Controllers_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/kitchenlog/controllers"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
)

func setupExportRouter(t *testing.T) *gin.Engine {
	records, f := setupServices(t)
	exports := services.NewExportService(records, nil, f, pipeline.DefaultThresholds)
	exports.Now = func() time.Time { return time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC) }

	router := gin.New()
	taskCtrl := controllers.NewTaskController(records, f)
	tempCtrl := controllers.NewTemperatureController(records, f, pipeline.DefaultThresholds)
	exportCtrl := controllers.NewExportController(exports)
	router.POST("/api/tasks", taskCtrl.CreateTasks)
	router.POST("/api/temperature-records", tempCtrl.CreateTemperatureRecords)
	router.GET("/api/tasks/export", exportCtrl.ExportTasks)
	router.GET("/api/temperature-records/export", exportCtrl.ExportTemperatureRecords)

	w, _ := doJSON(t, router, http.MethodPost, "/api/tasks", []map[string]string{
		{"department": "Deli", "cleaning_time": "2024-06-03T09:00", "cleaned_by": "Navi", "area_equipment": "Floors"},
		{"department": "Warehouse", "cleaning_time": "2024-06-04T09:00", "cleaned_by": "Tate", "area_equipment": "Bins"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = doJSON(t, router, http.MethodPost, "/api/temperature-records", map[string]interface{}{
		"name": "Navi", "location": "Deli Refrigerator 2", "temperature": 6, "unit": "C", "recorded_at": "2024-06-03T08:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return router
}

func TestExportTasks_PDF(t *testing.T) {
	router := setupExportRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/tasks/export?start=2024-06-01&end=2024-06-30", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="tasks_by_department.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get("X-Export-Rows"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestExportTemperatureRecords_Spreadsheet(t *testing.T) {
	router := setupExportRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/temperature-records/export?format=xlsx&location=Deli+Refrigerator+2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="Temp_Records_20240605.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Export-Rows"))
	// XLSX is a zip archive.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestExport_EmptySelectionIsRefused(t *testing.T) {
	router := setupExportRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/tasks/export?department=Warehouse&start=2024-06-03&end=2024-06-03", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, pipeline.ErrNothingToExport.Error(), resp.Message)

	w, _ = doJSON(t, router, http.MethodGet, "/api/temperature-records/export?class=Freezer", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExport_BadRequest(t *testing.T) {
	router := setupExportRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/tasks/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "unsupported export format")

	w, _ = doJSON(t, router, http.MethodGet, "/api/temperature-records/export?end=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
