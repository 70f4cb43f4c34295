package formula

import "github.com/civiltoolbox/toolbox/pkg/models"

// InchesConverter converts inches to feet, meters, centimeters and yards.
type InchesConverter struct{}

func (InchesConverter) Kind() string       { return string(KindInchesConverter) }
func (InchesConverter) Requires() []string { return []string{"inches"} }

func (InchesConverter) Evaluate(in models.Inputs) []models.Output {
	inches := in.Get("inches")
	return []models.Output{
		fixed("Feet", inches/12, 4),
		fixed("Meters", inches*0.0254, 4),
		fixed("Centimeters", inches*2.54, 2),
		fixed("Yards", inches/36, 4),
	}
}

// CementWeightVolume converts a cement mass in kg to volume and bags.
type CementWeightVolume struct{}

func (CementWeightVolume) Kind() string       { return string(KindCementWeightVolume) }
func (CementWeightVolume) Requires() []string { return []string{"weight"} }

func (CementWeightVolume) Evaluate(in models.Inputs) []models.Output {
	weight := in.Get("weight")
	vol := weight / CementDensity
	return []models.Output{
		fixed("Volume (m³)", vol, 4),
		fixed("Bags (50kg)", weight/CementBagKg, 2),
		fixed("Liters", vol*1000, 2),
	}
}

// LandArea converts square feet to the common land measures.
type LandArea struct{}

const (
	sqmPerSqft   = 0.092903
	sqftPerAcre  = 43560.0
	sqftPerHa    = 107639.0
	sqftPerGunth = 1089.0
)

func (LandArea) Kind() string       { return string(KindLandArea) }
func (LandArea) Requires() []string { return []string{"sqft"} }

func (LandArea) Evaluate(in models.Inputs) []models.Output {
	sqft := in.Get("sqft")
	return []models.Output{
		fixed("Square Meters", sqft*sqmPerSqft, 2),
		fixed("Acres", sqft/sqftPerAcre, 4),
		fixed("Hectares", sqft/sqftPerHa, 4),
		fixed("Guntha", sqft/sqftPerGunth, 2),
	}
}

// WaterTank computes the capacity of a rectangular tank.
type WaterTank struct{}

const gallonsPerCubicMeter = 264.172

func (WaterTank) Kind() string       { return string(KindWaterTank) }
func (WaterTank) Requires() []string { return []string{"length", "width", "depth"} }

func (WaterTank) Evaluate(in models.Inputs) []models.Output {
	vol := in.Get("length") * in.Get("width") * in.Get("depth")
	return []models.Output{
		fixed("Volume (m³)", vol, 3),
		fixedUnit("Capacity", vol*1000, 0, "L"),
		fixedUnit("US Gallons", vol*gallonsPerCubicMeter, 1, "gal"),
	}
}
