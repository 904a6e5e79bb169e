package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/kitchenlog/export"
	"github.com/yeremiapane/kitchenlog/metrics"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/utils"
)

// ExportRequest carries the export modal's own filter, independent of
// whatever the list view is currently showing.
type ExportRequest struct {
	Criteria pipeline.Criteria
	Format   export.Format
}

type ExportService struct {
	Records    *RecordService
	Logo       LogoSource
	Formatter  pipeline.Formatter
	Thresholds pipeline.Thresholds
	Now        func() time.Time
}

func NewExportService(records *RecordService, logo LogoSource, f pipeline.Formatter, th pipeline.Thresholds) *ExportService {
	return &ExportService{
		Records:    records,
		Logo:       logo,
		Formatter:  f,
		Thresholds: th,
		Now:        time.Now,
	}
}

// ExportTasks returns pipeline.ErrNothingToExport when the filter leaves no
// tasks.
func (s *ExportService) ExportTasks(ctx context.Context, req ExportRequest) (*export.File, error) {
	req.Criteria.Location = s.Formatter.Location
	doc, err := pipeline.TaskReport(s.Records.Tasks(ctx), req.Criteria, s.Formatter)
	if err != nil {
		s.observe(metrics.CollectionTasks, req.Format, err)
		return nil, err
	}
	file, err := s.render(ctx, doc, req.Format, pipeline.TaskFileName)
	s.observe(metrics.CollectionTasks, req.Format, err)
	return file, err
}

// ExportTemperatureRecords returns pipeline.ErrNothingToExport when the filter
// leaves no readings.
func (s *ExportService) ExportTemperatureRecords(ctx context.Context, req ExportRequest) (*export.File, error) {
	req.Criteria.Location = s.Formatter.Location
	doc, err := pipeline.TemperatureReport(s.Records.TemperatureRecords(ctx), req.Criteria, s.Formatter, s.Thresholds)
	if err != nil {
		s.observe(metrics.CollectionTempRecords, req.Format, err)
		return nil, err
	}
	now := s.Now()
	file, err := s.render(ctx, doc, req.Format, func(ext string) string {
		return pipeline.TemperatureFileName(now, s.Formatter, ext)
	})
	s.observe(metrics.CollectionTempRecords, req.Format, err)
	return file, err
}

func (s *ExportService) render(ctx context.Context, doc pipeline.Document, format export.Format, name func(ext string) string) (*export.File, error) {
	sink, err := export.SinkFor(format)
	if err != nil {
		return nil, err
	}

	var logo *export.Asset
	if format == export.FormatPDF && s.Logo != nil {
		logo = s.Logo.Load(ctx)
	}

	data, err := sink.Render(doc, logo)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", doc.Title, err)
	}
	file := &export.File{
		Name:        name(sink.Extension()),
		ContentType: sink.ContentType(),
		Data:        data,
		Rows:        doc.RowCount(),
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"file":  file.Name,
		"rows":  file.Rows,
		"bytes": len(file.Data),
	}).Info("Export rendered")
	return file, nil
}

func (s *ExportService) observe(collection string, format export.Format, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, pipeline.ErrNothingToExport):
		outcome = metrics.OutcomeEmpty
	case err != nil:
		outcome = metrics.OutcomeError
		utils.ErrorLogger.WithFields(logrus.Fields{
			"collection": collection,
			"format":     format,
		}).Errorf("Export failed: %v", err)
	}
	metrics.Exports.WithLabelValues(collection, string(format), outcome).Inc()
}
