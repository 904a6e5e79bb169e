package models

import (
	"fmt"
	"slices"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateTask checks required fields and option-list membership for the
// task's department. It trims free text in place.
func ValidateTask(t *CleaningTask) error {
	t.Department = strings.TrimSpace(t.Department)
	t.CleanedBy = strings.TrimSpace(t.CleanedBy)
	t.AreaEquipment = strings.TrimSpace(t.AreaEquipment)
	t.CleaningType = strings.TrimSpace(t.CleaningType)
	t.Comments = strings.TrimSpace(t.Comments)

	if !slices.Contains(Departments, t.Department) {
		return invalid("department", "must be one of %s", strings.Join(Departments, ", "))
	}
	if t.CleaningTime.IsZero() {
		return invalid("cleaning_time", "is required")
	}
	if t.CleanedBy == "" {
		return invalid("cleaned_by", "is required")
	}
	if !slices.Contains(CleanedByOptions[t.Department], t.CleanedBy) {
		return invalid("cleaned_by", "%q is not on the %s roster", t.CleanedBy, t.Department)
	}
	if t.AreaEquipment == "" {
		return invalid("area_equipment", "is required")
	}
	if !slices.Contains(AreaEquipmentOptions[t.Department], t.AreaEquipment) {
		return invalid("area_equipment", "%q is not a %s area", t.AreaEquipment, t.Department)
	}
	if RequiresCleaningType(t.AreaEquipment) {
		if t.CleaningType == "" {
			return invalid("cleaning_type", "is required for %s", t.AreaEquipment)
		}
	}
	if t.CleaningType != "" && !slices.Contains(CleaningTypes, t.CleaningType) {
		return invalid("cleaning_type", "must be one of %s", strings.Join(CleaningTypes, ", "))
	}
	return nil
}

// ValidateTemperatureRecord checks the reading and normalises the unit: it is
// upper-cased, and cleared for a defrost reading.
func ValidateTemperatureRecord(r *TemperatureRecord) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)

	if r.Name == "" {
		return invalid("name", "is required")
	}
	if !slices.Contains(Locations, r.Location) {
		return invalid("location", "%q is not a known storage location", r.Location)
	}
	if strings.TrimSpace(string(r.Temperature)) == "" {
		return invalid("temperature", "is required")
	}
	if r.Temperature.IsDefrost() {
		r.Temperature = Defrost
		r.Unit = nil
		return nil
	}
	if _, ok := r.Temperature.Float(); !ok {
		return invalid("temperature", "must be a number or %s", Defrost)
	}
	if r.Unit == nil {
		return invalid("unit", "is required")
	}
	unit := strings.ToUpper(strings.TrimSpace(*r.Unit))
	if unit != UnitCelsius && unit != UnitFahrenheit {
		return invalid("unit", "must be C or F")
	}
	r.Unit = &unit
	return nil
}
