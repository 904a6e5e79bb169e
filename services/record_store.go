package services

import (
	"context"

	"github.com/yeremiapane/kitchenlog/models"
	"gorm.io/gorm"
)

// RecordStore is the hosted table store: full ordered reads and inserts.
// Nothing is ever updated or deleted through it.
type RecordStore interface {
	ListTasks(ctx context.Context) ([]models.CleaningTask, error)
	ListTemperatureRecords(ctx context.Context) ([]models.TemperatureRecord, error)
	CreateTasks(ctx context.Context, tasks []models.CleaningTask) error
	CreateTemperatureRecords(ctx context.Context, records []models.TemperatureRecord) error
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListTasks(ctx context.Context) ([]models.CleaningTask, error) {
	var tasks []models.CleaningTask
	if err := s.DB.WithContext(ctx).Order("cleaning_time DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *GormStore) ListTemperatureRecords(ctx context.Context) ([]models.TemperatureRecord, error) {
	var records []models.TemperatureRecord
	if err := s.DB.WithContext(ctx).Order("recorded_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CreateTasks inserts all tasks or none.
func (s *GormStore) CreateTasks(ctx context.Context, tasks []models.CleaningTask) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tasks).Error
	})
}

// CreateTemperatureRecords inserts all records or none.
func (s *GormStore) CreateTemperatureRecords(ctx context.Context, records []models.TemperatureRecord) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}
