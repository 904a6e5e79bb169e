package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/yeremiapane/kitchenlog/metrics"
	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/utils"
)

// RecordService validates writes and serves full-collection reads.
//
// Concurrent reads of the same collection share one store scan. The returned
// slices are shared between callers and must be treated as read-only; the
// pipeline only ever derives new slices from them.
type RecordService struct {
	store      RecordStore
	thresholds pipeline.Thresholds
	reads      singleflight.Group
}

func NewRecordService(store RecordStore, thresholds pipeline.Thresholds) *RecordService {
	return &RecordService{store: store, thresholds: thresholds}
}

// Tasks returns every task, newest first. A failed read is logged and yields
// an empty sequence.
func (s *RecordService) Tasks(ctx context.Context) []models.CleaningTask {
	v, err, _ := s.reads.Do(metrics.CollectionTasks, func() (interface{}, error) {
		return s.store.ListTasks(context.WithoutCancel(ctx))
	})
	if err != nil {
		s.readFailed(metrics.CollectionTasks, err)
		return []models.CleaningTask{}
	}
	return v.([]models.CleaningTask)
}

// TemperatureRecords returns every reading, newest first. A failed read is
// logged and yields an empty sequence.
func (s *RecordService) TemperatureRecords(ctx context.Context) []models.TemperatureRecord {
	v, err, _ := s.reads.Do(metrics.CollectionTempRecords, func() (interface{}, error) {
		return s.store.ListTemperatureRecords(context.WithoutCancel(ctx))
	})
	if err != nil {
		s.readFailed(metrics.CollectionTempRecords, err)
		return []models.TemperatureRecord{}
	}
	return v.([]models.TemperatureRecord)
}

func (s *RecordService) readFailed(collection string, err error) {
	metrics.StoreReadFailures.WithLabelValues(collection).Inc()
	utils.ErrorLogger.WithFields(logrus.Fields{
		"collection": collection,
	}).Errorf("Error fetching records: %v", err)
}

// CreateTasks validates every task before writing any of them.
func (s *RecordService) CreateTasks(ctx context.Context, tasks []models.CleaningTask) error {
	if len(tasks) == 0 {
		return &models.ValidationError{Field: "tasks", Message: "at least one task is required"}
	}
	for i := range tasks {
		if err := models.ValidateTask(&tasks[i]); err != nil {
			return batchError(len(tasks), i, err)
		}
	}

	if err := s.store.CreateTasks(ctx, tasks); err != nil {
		return err
	}
	metrics.RecordsCreated.WithLabelValues(metrics.CollectionTasks).Add(float64(len(tasks)))
	utils.InfoLogger.WithField("count", len(tasks)).Info("Cleaning log submitted")
	return nil
}

// CreateTemperatureRecords validates every reading before writing any of
// them. Critical readings are logged as warnings once stored.
func (s *RecordService) CreateTemperatureRecords(ctx context.Context, records []models.TemperatureRecord) error {
	if len(records) == 0 {
		return &models.ValidationError{Field: "records", Message: "at least one reading is required"}
	}
	for i := range records {
		if err := models.ValidateTemperatureRecord(&records[i]); err != nil {
			return batchError(len(records), i, err)
		}
	}

	if err := s.store.CreateTemperatureRecords(ctx, records); err != nil {
		return err
	}
	metrics.RecordsCreated.WithLabelValues(metrics.CollectionTempRecords).Add(float64(len(records)))

	for _, r := range records {
		if !s.thresholds.IsCritical(r) {
			continue
		}
		metrics.CriticalReadings.WithLabelValues(r.Location).Inc()
		utils.InfoLogger.WithFields(logrus.Fields{
			"location":    r.Location,
			"temperature": pipeline.FormatTemperature(r),
			"recorded_by": r.Name,
		}).Warn("Critical temperature recorded")
	}
	return nil
}

func batchError(n, i int, err error) error {
	if n == 1 {
		return err
	}
	return fmt.Errorf("record %d: %w", i+1, err)
}

// IsValidation reports whether err was caused by rejected input rather than
// by the store.
func IsValidation(err error) bool {
	var ve *models.ValidationError
	return errors.As(err, &ve)
}
