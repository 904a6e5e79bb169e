package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeremiapane/kitchenlog/config"
	"github.com/yeremiapane/kitchenlog/controllers"
	"github.com/yeremiapane/kitchenlog/metrics"
	"github.com/yeremiapane/kitchenlog/middlewares"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
)

// Dependencies are the wired services the HTTP layer serves.
type Dependencies struct {
	Config     *config.Config
	Records    *services.RecordService
	Exports    *services.ExportService
	Thresholds pipeline.Thresholds
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	formatter := cfg.Formatter()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders(cfg.Server.GinMode == gin.ReleaseMode))
	r.Use(middlewares.CORSMiddlewares(cfg.Server.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(120, time.Minute).RateLimit())

	taskCtrl := controllers.NewTaskController(deps.Records, formatter)
	tempCtrl := controllers.NewTemperatureController(deps.Records, formatter, deps.Thresholds)
	exportCtrl := controllers.NewExportController(deps.Exports)
	schemaCtrl := controllers.NewSchemaController(formatter, deps.Thresholds)
	accessCtrl := controllers.NewAccessController(cfg.Access)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	access := r.Group("/")
	access.Use(middlewares.NewStrictRateLimiter(time.Minute/5, 5))
	{
		access.POST("/access", accessCtrl.Unlock)
	}

	// ----------------------------------------------------------------
	//                      GATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AccessMiddleware(cfg.Access))

	api.GET("/schema", schemaCtrl.GetSchema)

	api.GET("/tasks", taskCtrl.GetTasks)
	api.POST("/tasks", taskCtrl.CreateTasks)
	api.GET("/tasks/export", middlewares.ExportLoggerMiddleware(metrics.CollectionTasks), exportCtrl.ExportTasks)

	api.GET("/temperature-records", tempCtrl.GetTemperatureRecords)
	api.POST("/temperature-records", tempCtrl.CreateTemperatureRecords)
	api.GET("/temperature-records/export", middlewares.ExportLoggerMiddleware(metrics.CollectionTempRecords), exportCtrl.ExportTemperatureRecords)

	return r
}
