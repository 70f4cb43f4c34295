package formula

import (
	"math"

	"github.com/civiltoolbox/toolbox/pkg/models"
)

const (
	// twoWayLimit is the Ly/Lx ratio below which a slab spans both ways.
	twoWayLimit = 2.0
	// spanDepthRatio is the basic span/effective-depth rule L/35.
	spanDepthRatio = 35.0
)

// SlabDesigner is a preliminary two-way RCC slab check. Spans are in m.
type SlabDesigner struct{}

func (SlabDesigner) Kind() string       { return string(KindSlabDesigner) }
func (SlabDesigner) Requires() []string { return []string{"lx", "ly"} }

func (SlabDesigner) Evaluate(in models.Inputs) []models.Output {
	lx := in.Get("lx")
	ratio := in.Get("ly") / lx
	minThickness := Ceil((lx * 1000) / spanDepthRatio)

	slabType, status := "One-way Slab (Ratio > 2)", "Warning: Use One-Way Design"
	if ratio < twoWayLimit {
		slabType, status = "Two-way Slab", "Designed as Two-Way"
	}

	return []models.Output{
		fixed("Ly/Lx Ratio", ratio, 2),
		text("Slab Type", slabType),
		number("Min Thickness (mm)", minThickness),
		text("Status", status),
	}
}

// footingSelfWeight is the allowance for footing self weight and backfill.
const footingSelfWeight = 0.10

// IsolatedFooting sizes a square isolated footing from the column load (kN)
// and safe bearing capacity (kN/m²).
type IsolatedFooting struct{}

func (IsolatedFooting) Kind() string       { return string(KindIsolatedFooting) }
func (IsolatedFooting) Requires() []string { return []string{"load", "sbc"} }

func (IsolatedFooting) Evaluate(in models.Inputs) []models.Output {
	load := in.Get("load")
	area := (1 + footingSelfWeight) * load / in.Get("sbc")
	return []models.Output{
		fixed("Footing Area (m²)", area, 2),
		fixed("Square Side (m)", math.Sqrt(area), 2),
		fixed("Self Weight Allowance (kN)", footingSelfWeight*load, 1),
	}
}

// loadFactor is the limit-state partial safety factor for dead + live load.
const loadFactor = 1.5

// SlabLoad totals the area load on a slab: self weight from thickness (mm),
// floor finish and live load (kN/m²).
type SlabLoad struct{}

func (SlabLoad) Kind() string       { return string(KindSlabLoad) }
func (SlabLoad) Requires() []string { return []string{"thickness", "finish", "live"} }

func (SlabLoad) Evaluate(in models.Inputs) []models.Output {
	self := in.Get("thickness") / 1000 * RCCUnitWeight
	total := self + in.Get("finish") + in.Get("live")
	return []models.Output{
		fixedUnit("Self Weight", self, 2, "kN/m²"),
		fixedUnit("Total Load", total, 2, "kN/m²"),
		fixedUnit("Factored Load (1.5x)", total*loadFactor, 2, "kN/m²"),
	}
}
