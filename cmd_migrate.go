package main

import (
	"github.com/spf13/cobra"

	"github.com/yeremiapane/kitchenlog/config"
	"github.com/yeremiapane/kitchenlog/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tasks and temp_records tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return database.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
