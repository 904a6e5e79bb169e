package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CleaningTask struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Department    string    `gorm:"type:varchar(30);not null;index" json:"department"`
	CleaningTime  time.Time `gorm:"not null;index:idx_tasks_cleaning_time,sort:desc" json:"cleaning_time"`
	CleanedBy     string    `gorm:"type:varchar(60);not null" json:"cleaned_by"`
	AreaEquipment string    `gorm:"type:varchar(60);not null" json:"area_equipment"`
	CleaningType  string    `gorm:"type:varchar(40)" json:"cleaning_type"`
	Comments      string    `gorm:"type:text" json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
}

func (CleaningTask) TableName() string {
	return "tasks"
}

func (t *CleaningTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CleaningTime = t.CleaningTime.UTC()
	return nil
}

func (t CleaningTask) CategoryKey() string  { return t.Department }
func (t CleaningTask) AreaKey() string      { return t.AreaEquipment }
func (t CleaningTask) Timestamp() time.Time { return t.CleaningTime }
