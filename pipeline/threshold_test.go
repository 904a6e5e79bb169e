package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/kitchenlog/models"
)

func reading(location, temp, unit string) models.TemperatureRecord {
	r := models.TemperatureRecord{Location: location, Temperature: models.Temperature(temp)}
	if unit != "" {
		r.Unit = &unit
	}
	return r
}

func TestIsCritical(t *testing.T) {
	tests := []struct {
		name   string
		record models.TemperatureRecord
		want   bool
	}{
		{"fridge at ceiling", reading("Deli Refrigerator 1", "4", "C"), false},
		{"fridge above ceiling", reading("Deli Refrigerator 1", "4.1", "C"), true},
		{"cooler counts as fridge", reading("Small Meat Cooler", "5", "C"), true},
		{"freezer at ceiling", reading("Big Freezer", "-16", "C"), false},
		{"freezer above ceiling", reading("Big Freezer", "-15.9", "C"), true},
		{"big freezer at -15", reading("Big Freezer", "-15", "C"), true},
		{"freezer at -18 is safe", reading("Big Freezer", "-18", "C"), false},
		{"fridge fahrenheit at ceiling", reading("Deli Cooler", "39.2", "F"), false},
		{"fridge fahrenheit above ceiling", reading("Deli Cooler", "40", "F"), true},
		{"freezer fahrenheit above ceiling", reading("Small Freezer", "0", "F"), true},
		{"freezer fahrenheit safe", reading("Small Freezer", "-5", "F"), false},
		{"location match is case-insensitive", reading("BIG FREEZER", "-10", "C"), true},
		{"unclassified room never critical", reading("Dry Aging Room", "30", "C"), false},
		{"defrost never critical", reading("Big Freezer", "DEFROST", "C"), false},
		{"defrost lower case", reading("Big Freezer", "defrost", ""), false},
		{"unparseable temperature", reading("Big Freezer", "warm", "C"), false},
		{"missing unit", reading("Big Freezer", "10", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCritical(tt.record))
		})
	}
}

func TestThresholds_FreezerCeilingIsConfigurable(t *testing.T) {
	strict := DefaultThresholds
	strict.FreezerC = -18

	r := reading("Big Freezer", "-17", "C")
	assert.False(t, IsCritical(r))
	assert.True(t, strict.IsCritical(r))
}
