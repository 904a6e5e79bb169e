package pipeline

import "github.com/yeremiapane/kitchenlog/models"

// Safe ceilings per storage class. A reading strictly above its ceiling is
// critical. The freezer ceiling is -16°C; some older exports used -18°C.
const (
	RefrigeratorCeilingC = 4.0
	FreezerCeilingC      = -16.0
	RefrigeratorCeilingF = 39.2
	FreezerCeilingF      = -0.4
)

type Thresholds struct {
	RefrigeratorC float64 `json:"refrigerator_c"`
	FreezerC      float64 `json:"freezer_c"`
	RefrigeratorF float64 `json:"refrigerator_f"`
	FreezerF      float64 `json:"freezer_f"`
}

var DefaultThresholds = Thresholds{
	RefrigeratorC: RefrigeratorCeilingC,
	FreezerC:      FreezerCeilingC,
	RefrigeratorF: RefrigeratorCeilingF,
	FreezerF:      FreezerCeilingF,
}

// IsCritical evaluates r against DefaultThresholds.
func IsCritical(r models.TemperatureRecord) bool {
	return DefaultThresholds.IsCritical(r)
}

func (th Thresholds) IsCritical(r models.TemperatureRecord) bool {
	v, ok := r.Temperature.Float()
	if !ok {
		return false
	}

	var fridge, freezer float64
	switch r.UnitSymbol() {
	case models.UnitCelsius:
		fridge, freezer = th.RefrigeratorC, th.FreezerC
	case models.UnitFahrenheit:
		fridge, freezer = th.RefrigeratorF, th.FreezerF
	default:
		return false
	}

	switch models.ClassifyLocation(r.Location) {
	case models.StorageRefrigerator:
		return v > fridge
	case models.StorageFreezer:
		return v > freezer
	}
	return false
}
