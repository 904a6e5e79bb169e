package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeremiapane/kitchenlog/export"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
)

var (
	exportFormat     string
	exportStart      string
	exportEnd        string
	exportDepartment string
	exportArea       string
	exportLocation   string
	exportClass      string
	exportOut        string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a filtered report to a file",
}

var exportTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Export cleaning tasks grouped by department",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), exportDepartment, exportArea, func(s *services.ExportService) exportFunc {
			return s.ExportTasks
		})
	},
}

var exportTempsCmd = &cobra.Command{
	Use:     "temps",
	Aliases: []string{"temperatures"},
	Short:   "Export temperature records grouped by day and location",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), exportClass, exportLocation, func(s *services.ExportService) exportFunc {
			return s.ExportTemperatureRecords
		})
	},
}

type exportFunc func(context.Context, services.ExportRequest) (*export.File, error)

func runExport(ctx context.Context, category, area string, pick func(*services.ExportService) exportFunc) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	criteria := pipeline.Criteria{Category: category, Area: area}
	if criteria.Start, err = optionalDay("--start", exportStart); err != nil {
		return err
	}
	if criteria.End, err = optionalDay("--end", exportEnd); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := pick(a.Exports)(ctx, services.ExportRequest{Criteria: criteria, Format: format})
	if errors.Is(err, pipeline.ErrNothingToExport) {
		fmt.Println(err)
		return nil
	}
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		path = file.Name
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, file.Name)
	}
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(file.Data))
	return nil
}

func optionalDay(flag, v string) (time.Time, error) {
	t, err := pipeline.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", flag, v)
	}
	return t, nil
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportFormat, "format", "pdf", "pdf or xlsx")
	exportCmd.PersistentFlags().StringVar(&exportStart, "start", "", "first day to include (YYYY-MM-DD)")
	exportCmd.PersistentFlags().StringVar(&exportEnd, "end", "", "last day to include (YYYY-MM-DD)")
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file or directory (default: generated name in the current directory)")

	exportTasksCmd.Flags().StringVar(&exportDepartment, "department", pipeline.All, "department to include")
	exportTasksCmd.Flags().StringVar(&exportArea, "area", pipeline.All, "area or equipment to include")
	exportTempsCmd.Flags().StringVar(&exportLocation, "location", pipeline.All, "storage location to include")
	exportTempsCmd.Flags().StringVar(&exportClass, "class", pipeline.All, "Refrigerator, Freezer or Other")

	exportCmd.AddCommand(exportTasksCmd, exportTempsCmd)
	rootCmd.AddCommand(exportCmd)
}
