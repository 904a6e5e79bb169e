package models

import (
	"slices"
	"strings"
)

// SchemaVersion identifies the option lists below. Forms fetch the schema from
// the API instead of hardcoding their own copies.
const SchemaVersion = 3

const (
	DepartmentDeli      = "Deli"
	DepartmentWarehouse = "Warehouse"
)

const (
	CleaningTypeDry      = "Dry Cleaning/Sanitization"
	CleaningTypeDetailed = "Detailed Cleaning"
)

var Departments = []string{DepartmentDeli, DepartmentWarehouse}

var CleanedByOptions = map[string][]string{
	DepartmentDeli:      {"Tamara", "Jimmy", "Verna", "Stephania", "Navi", "Sonam"},
	DepartmentWarehouse: {"Gagi", "Tate", "Kirro"},
}

var AreaEquipmentOptions = map[string][]string{
	DepartmentDeli:      {"Floors", "Detail Cleaning", "End of Shift Cleaning", "Grater", "Meat Slicer 1", "Meat Slicer 2", "Cheese Slicer"},
	DepartmentWarehouse: {"Floors", "Racks", "Detail Cleaning", "Bins"},
}

var CleaningTypes = []string{CleaningTypeDry, CleaningTypeDetailed}

// CleaningTypeEquipment lists the slicer and grater class equipment whose
// cleaning log must say which kind of cleaning was done.
var CleaningTypeEquipment = []string{"Grater", "Meat Slicer 1", "Meat Slicer 2", "Cheese Slicer"}

var Locations = []string{
	"Deli Refrigerator 1",
	"Deli Refrigerator 2",
	"Deli Refrigerator 3",
	"Deli Refrigerator 4",
	"Deli Refrigerator 5",
	"Deli Room",
	"Small Meat Cooler",
	"Deli Cooler",
	"Dry Aging Room",
	"Small Freezer",
	"Big Freezer",
	"Big Meat Cooler",
	"Meat Cutting Room",
}

type StorageClass string

const (
	StorageRefrigerator StorageClass = "Refrigerator"
	StorageFreezer      StorageClass = "Freezer"
	StorageOther        StorageClass = "Other"
)

// ClassifyLocation infers the storage-unit class from a location name.
// A name matching both families is a freezer.
func ClassifyLocation(location string) StorageClass {
	l := strings.ToLower(location)
	switch {
	case strings.Contains(l, "freezer"):
		return StorageFreezer
	case strings.Contains(l, "refrigerator"), strings.Contains(l, "cooler"):
		return StorageRefrigerator
	default:
		return StorageOther
	}
}

func RequiresCleaningType(areaEquipment string) bool {
	return slices.Contains(CleaningTypeEquipment, areaEquipment)
}

// DepartmentRank orders departments the way the schema lists them; unknown
// departments sort after known ones.
func DepartmentRank(department string) int {
	if i := slices.Index(Departments, department); i >= 0 {
		return i
	}
	return len(Departments)
}

type Schema struct {
	Version               int                 `json:"version"`
	Departments           []string            `json:"departments"`
	CleanedBy             map[string][]string `json:"cleaned_by"`
	AreaEquipment         map[string][]string `json:"area_equipment"`
	CleaningTypes         []string            `json:"cleaning_types"`
	CleaningTypeEquipment []string            `json:"cleaning_type_equipment"`
	Locations             []string            `json:"locations"`
	Units                 []string            `json:"units"`
	DefrostSentinel       string              `json:"defrost_sentinel"`
}

func CurrentSchema() Schema {
	return Schema{
		Version:               SchemaVersion,
		Departments:           Departments,
		CleanedBy:             CleanedByOptions,
		AreaEquipment:         AreaEquipmentOptions,
		CleaningTypes:         CleaningTypes,
		CleaningTypeEquipment: CleaningTypeEquipment,
		Locations:             Locations,
		Units:                 []string{UnitCelsius, UnitFahrenheit},
		DefrostSentinel:       string(Defrost),
	}
}
