// Package formula holds the closed set of calculator formulas.
//
// Every calculator is one variant of models.Formula: a small value type that
// names its kind, declares the field ids it reads and maps an Input State to
// labelled outputs in display order. Formulas are pure; they never validate
// or clamp their inputs, so a zero denominator surfaces as NaN or Infinity
// in the output display exactly as the arithmetic produced it.
//
// The constants in this package are part of the observable contract.
// Changing one changes user-visible results.
package formula

import (
	"github.com/civiltoolbox/toolbox/pkg/models"
)

// Kind names a formula variant.
type Kind string

const (
	KindInchesConverter      Kind = "inches-converter"
	KindCementWeightVolume   Kind = "cement-weight-volume"
	KindBrickMasonry         Kind = "brick-masonry"
	KindConcreteMix          Kind = "concrete-mix"
	KindRebarWeight          Kind = "rebar-weight"
	KindStirrupCuttingLength Kind = "stirrup-cutting-length"
	KindSlabDesigner         Kind = "two-way-slab"
	KindIsolatedFooting      Kind = "isolated-footing"
	KindSlabLoad             Kind = "slab-load"
	KindEMI                  Kind = "emi"
	KindConstructionCost     Kind = "construction-cost"
	KindPCCRateAnalysis      Kind = "pcc-rate-analysis"
	KindLandArea             Kind = "land-area"
	KindWaterTank            Kind = "water-tank"
)

// Shared material constants.
const (
	// CementDensity is the bulk density of cement in kg/m³.
	CementDensity = 1440.0
	// CementBagKg is the mass of one cement bag.
	CementBagKg = 50.0
	// CementBagVolume is the volume of one 50 kg bag in m³.
	CementBagVolume = 0.0347
	// CementBagCft is the volume of one bag in cubic feet.
	CementBagCft = 1.226
	// DryVolumeFactor converts wet concrete volume to dry ingredient volume.
	DryVolumeFactor = 1.54
	// RebarWeightDivisor gives steel weight in kg/m as d²/162.2 (d in mm).
	RebarWeightDivisor = 162.2
	// RCCUnitWeight is reinforced concrete self weight in kN/m³.
	RCCUnitWeight = 25.0
)

func fixed(label string, v float64, digits int) models.Output {
	return models.Output{Label: label, Display: ToFixed(v, digits), Value: v, Numeric: true}
}

func fixedUnit(label string, v float64, digits int, unit string) models.Output {
	return models.Output{Label: label, Display: ToFixed(v, digits) + " " + unit, Value: v, Numeric: true}
}

func number(label string, v float64) models.Output {
	return models.Output{Label: label, Display: FormatNumber(v), Value: v, Numeric: true}
}

func text(label, s string) models.Output {
	return models.Output{Label: label, Display: s}
}

func money(m Money, label string, v float64) models.Output {
	r := Round(v)
	return models.Output{Label: label, Display: RupeeSymbol + m.Integer(r), Value: r, Numeric: true}
}
