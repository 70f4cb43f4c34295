package formula

import "github.com/civiltoolbox/toolbox/pkg/models"

// RebarWeight gives steel bar weight from diameter (mm) and length (m).
type RebarWeight struct{}

func (RebarWeight) Kind() string       { return string(KindRebarWeight) }
func (RebarWeight) Requires() []string { return []string{"dia", "length"} }

func (RebarWeight) Evaluate(in models.Inputs) []models.Output {
	dia := in.Get("dia")
	perMeter := dia * dia / RebarWeightDivisor
	weight := perMeter * in.Get("length")
	return []models.Output{
		fixedUnit("Total Weight", weight, 2, "kg"),
		fixedUnit("Weight per Meter", perMeter, 3, "kg/m"),
	}
}

// Stirrup hook and bend allowances, in bar diameters.
const (
	stirrupHooks     = 2
	stirrupHookLen   = 10
	stirrupBends     = 3
	stirrupBendDeduc = 2
)

// StirrupCuttingLength computes the cutting length of a rectangular stirrup
// for a beam or column section. All inputs are in mm.
type StirrupCuttingLength struct{}

func (StirrupCuttingLength) Kind() string { return string(KindStirrupCuttingLength) }
func (StirrupCuttingLength) Requires() []string {
	return []string{"width", "depth", "cover", "dia"}
}

func (StirrupCuttingLength) Evaluate(in models.Inputs) []models.Output {
	cover, dia := in.Get("cover"), in.Get("dia")
	a := in.Get("width") - 2*cover
	b := in.Get("depth") - 2*cover
	length := 2*(a+b) + stirrupHooks*stirrupHookLen*dia - stirrupBends*stirrupBendDeduc*dia
	weight := dia * dia / RebarWeightDivisor * (length / 1000)

	return []models.Output{
		fixedUnit("Cutting Length", length, 0, "mm"),
		fixedUnit("Cutting Length (m)", length/1000, 3, "m"),
		fixedUnit("Weight per Stirrup", weight, 3, "kg"),
	}
}
