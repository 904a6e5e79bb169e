package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UnitCelsius    = "C"
	UnitFahrenheit = "F"
)

// Defrost is recorded instead of a number while a unit is in its defrost cycle.
const Defrost Temperature = "DEFROST"

// Temperature holds either a decimal reading or the Defrost sentinel. It is
// stored as text and travels over JSON as a number when it is numeric.
type Temperature string

func (t Temperature) IsDefrost() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(Defrost))
}

// Float reports the numeric value of the reading. ok is false for Defrost, for
// anything that does not parse as a number, and for NaN and infinities.
func (t Temperature) Float() (v float64, ok bool) {
	if t.IsDefrost() {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	if v, ok := t.Float(); ok {
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	}
	return json.Marshal(string(t))
}

func (t *Temperature) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Temperature(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("temperature must be a number or %q", Defrost)
	}
	*t = Temperature(n.String())
	return nil
}

type TemperatureRecord struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(80);not null" json:"name"`
	Location    string      `gorm:"type:varchar(60);not null;index" json:"location"`
	Temperature Temperature `gorm:"type:varchar(16);not null" json:"temperature"`
	Unit        *string     `gorm:"type:varchar(1)" json:"unit"`
	RecordedAt  time.Time   `gorm:"not null;index:idx_temp_records_recorded_at,sort:desc" json:"recorded_at"`
}

func (TemperatureRecord) TableName() string {
	return "temp_records"
}

func (r *TemperatureRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	r.RecordedAt = r.RecordedAt.UTC()
	if r.Temperature.IsDefrost() {
		r.Temperature = Defrost
		r.Unit = nil
	}
	return nil
}

// UnitSymbol returns the unit letter, or "" when no unit applies.
func (r TemperatureRecord) UnitSymbol() string {
	if r.Unit == nil || r.Temperature.IsDefrost() {
		return ""
	}
	return *r.Unit
}

func (r TemperatureRecord) CategoryKey() string  { return string(ClassifyLocation(r.Location)) }
func (r TemperatureRecord) AreaKey() string      { return r.Location }
func (r TemperatureRecord) Timestamp() time.Time { return r.RecordedAt }
