package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yeremiapane/kitchenlog/config"
	"github.com/yeremiapane/kitchenlog/database"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
	"github.com/yeremiapane/kitchenlog/utils"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kitchenlog",
	Short: "Cleaning and temperature log for the deli and warehouse",
	Long: `kitchenlog records cleaning tasks and refrigeration temperature readings,
serves them to the log forms over HTTP, and exports filtered reports as PDF or XLSX.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		utils.InitLogger(cfg.Log.Level, cfg.Log.Format)
		if cfg.Server.GinMode == gin.ReleaseMode {
			gin.SetMode(gin.ReleaseMode)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
}

// app holds the services every command shares.
type app struct {
	DB      *gorm.DB
	Records *services.RecordService
	Exports *services.ExportService
}

func newApp(cfg *config.Config) (*app, error) {
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	records := services.NewRecordService(services.NewGormStore(db), pipeline.DefaultThresholds)
	logo := services.NewAssetLoader(cfg.Export.LogoSource, cfg.Export.AssetTimeout)
	exports := services.NewExportService(records, logo, cfg.Formatter(), pipeline.DefaultThresholds)
	return &app{DB: db, Records: records, Exports: exports}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
