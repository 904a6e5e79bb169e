package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yeremiapane/kitchenlog/export"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/utils"
)

// ArchiveScheduler writes the previous day's task and temperature PDFs to Dir
// on a cron schedule evaluated in the display zone.
type ArchiveScheduler struct {
	Exports  *ExportService
	Dir      string
	Schedule string

	cron *cron.Cron
	loc  *time.Location
}

func NewArchiveScheduler(exports *ExportService, dir, schedule string) *ArchiveScheduler {
	loc := exports.Formatter.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ArchiveScheduler{
		Exports:  exports,
		Dir:      dir,
		Schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		loc:      loc,
	}
}

func (s *ArchiveScheduler) Start() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if _, err := s.cron.AddFunc(s.Schedule, s.archiveYesterday); err != nil {
		return fmt.Errorf("schedule archive %q: %w", s.Schedule, err)
	}
	utils.InfoLogger.Printf("Archive scheduler started (%s) writing to %s", s.Schedule, s.Dir)
	s.cron.Start()
	return nil
}

// Stop waits for a running archive job to finish.
func (s *ArchiveScheduler) Stop() {
	<-s.cron.Stop().Done()
	utils.InfoLogger.Println("Archive scheduler stopped")
}

func (s *ArchiveScheduler) archiveYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().In(s.loc).AddDate(0, 0, -1)
	if _, err := s.RunOnce(ctx, day); err != nil {
		utils.ErrorLogger.Errorf("Archive for %s failed: %v", day.Format(pipeline.DateLayout), err)
	}
}

// RunOnce archives a single calendar day and returns the files written. Days
// without records are skipped.
func (s *ArchiveScheduler) RunOnce(ctx context.Context, day time.Time) ([]string, error) {
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	req := ExportRequest{
		Criteria: pipeline.Criteria{Start: day, End: day},
		Format:   export.FormatPDF,
	}

	jobs := []struct {
		kind string
		run  func(context.Context, ExportRequest) (*export.File, error)
	}{
		{"tasks", s.Exports.ExportTasks},
		{"temperatures", s.Exports.ExportTemperatureRecords},
	}

	var written []string
	for _, job := range jobs {
		file, err := job.run(ctx, req)
		if errors.Is(err, pipeline.ErrNothingToExport) {
			utils.InfoLogger.Printf("No %s to archive for %s", job.kind, day.Format(pipeline.DateLayout))
			continue
		}
		if err != nil {
			return written, err
		}

		path := filepath.Join(s.Dir, day.Format(pipeline.DateLayout)+"_"+job.kind+"."+string(req.Format))
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
