package formula

import "github.com/civiltoolbox/toolbox/pkg/models"

// Brick masonry rules of thumb, per cubic foot of wall.
const (
	bricksPerCft   = 13.5
	mortarFraction = 0.30
	mortarDryRatio = 1.33
)

// BrickMasonry estimates bricks, cement and sand for a wall.
// Dimensions are in feet except thickness, which is in inches.
type BrickMasonry struct{}

func (BrickMasonry) Kind() string { return string(KindBrickMasonry) }
func (BrickMasonry) Requires() []string {
	return []string{"length", "height", "thickness", "ratio"}
}

func (BrickMasonry) Evaluate(in models.Inputs) []models.Output {
	ratio := in.Get("ratio")
	volume := in.Get("length") * in.Get("height") * (in.Get("thickness") / 12)
	bricks := Ceil(volume * bricksPerCft)
	mortarVol := volume * mortarFraction
	dryVol := mortarVol * mortarDryRatio
	cementBags := (dryVol / (1 + ratio)) / CementBagCft
	sand := dryVol * ratio / (1 + ratio)

	return []models.Output{
		number("Total Bricks", bricks),
		fixed("Cement (Bags)", cementBags, 2),
		fixed("Sand (cft)", sand, 2),
		fixed("Total Volume (cft)", volume, 2),
	}
}

// ConcreteMix splits a wet concrete volume into cement, sand and aggregate
// by nominal mix ratio. A zero ratio sum is not guarded.
type ConcreteMix struct{}

func (ConcreteMix) Kind() string { return string(KindConcreteMix) }
func (ConcreteMix) Requires() []string {
	return []string{"volume", "ratio_cement", "ratio_sand", "ratio_agg"}
}

func (ConcreteMix) Evaluate(in models.Inputs) []models.Output {
	rc, rs, ra := in.Get("ratio_cement"), in.Get("ratio_sand"), in.Get("ratio_agg")
	dryVol := in.Get("volume") * DryVolumeFactor
	sum := rc + rs + ra
	cement := (rc / sum) * dryVol
	sand := (rs / sum) * dryVol
	agg := (ra / sum) * dryVol

	return []models.Output{
		fixed("Cement (Bags)", cement/CementBagVolume, 2),
		fixed("Sand (m³)", sand, 3),
		fixed("Aggregates (m³)", agg, 3),
		fixed("Dry Volume (m³)", dryVol, 3),
	}
}
