package formula

import (
	"math"

	"github.com/civiltoolbox/toolbox/pkg/models"
)

// EMI is the standard loan amortization: amount·r·(1+r)^n / ((1+r)^n − 1)
// with r the monthly rate and n the number of monthly instalments.
// A zero rate yields NaN, which is reported as such.
type EMI struct {
	Money Money
}

func (EMI) Kind() string       { return string(KindEMI) }
func (EMI) Requires() []string { return []string{"amount", "rate", "tenure"} }

func (f EMI) Evaluate(in models.Inputs) []models.Output {
	amount := in.Get("amount")
	r := in.Get("rate") / (12 * 100)
	n := in.Get("tenure") * 12
	growth := math.Pow(1+r, n)
	emi := (amount * r * growth) / (growth - 1)
	totalPay := emi * n

	return []models.Output{
		money(f.Money, "Monthly EMI", emi),
		money(f.Money, "Total Interest", totalPay-amount),
		money(f.Money, "Total Payment", totalPay),
	}
}

// Customary share of the total construction cost per material head.
var costShares = []struct {
	label string
	share float64
}{
	{"Cement", 0.164},
	{"Sand", 0.123},
	{"Aggregate", 0.074},
	{"Steel", 0.246},
	{"Finishers", 0.165},
	{"Fittings", 0.228},
}

// ConstructionCost estimates the total built-up cost and its breakdown.
type ConstructionCost struct {
	Money Money
}

func (ConstructionCost) Kind() string       { return string(KindConstructionCost) }
func (ConstructionCost) Requires() []string { return []string{"area", "rate"} }

func (f ConstructionCost) Evaluate(in models.Inputs) []models.Output {
	total := in.Get("area") * in.Get("rate")
	out := make([]models.Output, 0, len(costShares)+1)
	out = append(out, money(f.Money, "Total Cost", total))
	for _, s := range costShares {
		out = append(out, money(f.Money, s.label, total*s.share))
	}
	return out
}

// Nominal 1:2:4 PCC mix.
const (
	pccCement = 1.0
	pccSand   = 2.0
	pccAgg    = 4.0
)

// PCCRateAnalysis prices plain cement concrete 1:2:4 for a given volume
// from material rates plus a labour percentage.
type PCCRateAnalysis struct {
	Money Money
}

func (PCCRateAnalysis) Kind() string { return string(KindPCCRateAnalysis) }
func (PCCRateAnalysis) Requires() []string {
	return []string{"volume", "cement_rate", "sand_rate", "agg_rate", "labour"}
}

func (f PCCRateAnalysis) Evaluate(in models.Inputs) []models.Output {
	volume := in.Get("volume")
	dryVol := volume * DryVolumeFactor
	sum := pccCement + pccSand + pccAgg
	bags := (pccCement / sum * dryVol) / CementBagVolume
	sand := pccSand / sum * dryVol
	agg := pccAgg / sum * dryVol

	material := bags*in.Get("cement_rate") + sand*in.Get("sand_rate") + agg*in.Get("agg_rate")
	labour := material * in.Get("labour") / 100
	total := material + labour

	return []models.Output{
		fixed("Cement (Bags)", bags, 2),
		fixed("Sand (m³)", sand, 3),
		fixed("Aggregates (m³)", agg, 3),
		money(f.Money, "Material Cost", material),
		money(f.Money, "Labour Cost", labour),
		money(f.Money, "Total Cost", total),
		money(f.Money, "Rate per m³", total/volume),
	}
}
