package catalog

import (
	"github.com/civiltoolbox/toolbox/internal/formula"
	"github.com/civiltoolbox/toolbox/pkg/models"
)

func num(id, label, unit string, def float64) models.Field {
	return models.Field{ID: id, Label: label, Type: models.FieldNumber, Unit: unit, Default: def}
}

// builtinTools declares the compiled-in calculators in display order.
func builtinTools(money formula.Money) []models.Tool {
	return []models.Tool{
		// ── Unit Converters ──────────────────────────────────
		{
			ID:          "inches-to-units",
			Name:        "Inches to Other units Converter",
			Category:    models.CategoryUnitConverter,
			Description: "Convert inches to feet, yards, meters, and cm.",
			Fields: []models.Field{
				num("inches", "Inches", "", 1),
			},
			Formula: formula.InchesConverter{},
		},
		{
			ID:          "cement-weight-vol",
			Name:        "Weight to Volume of Cement",
			Category:    models.CategoryUnitConverter,
			Description: "Convert cement weight in kg to volume in liters/bags.",
			Fields: []models.Field{
				num("weight", "Weight", "kg", 50),
			},
			Formula: formula.CementWeightVolume{},
		},

		// ── Cost Estimators ──────────────────────────────────
		{
			ID:          "construction-cost",
			Name:        "House Construction Cost Estimator",
			Category:    models.CategoryCostEstimator,
			Description: "Estimate total construction cost and material-wise breakdown from built-up area.",
			Fields: []models.Field{
				num("area", "Built-up Area", "sq ft", 1000),
				num("rate", "Construction Rate", "₹/sq ft", 1800),
			},
			Formula: formula.ConstructionCost{Money: money},
		},

		// ── Material Estimators ──────────────────────────────
		{
			ID:          "brick-masonry",
			Name:        "Brick Masonry Calculator",
			Category:    models.CategoryMaterialEstimator,
			Description: "Estimate bricks, cement, and sand for a wall.",
			Fields: []models.Field{
				num("length", "Wall Length", "ft", 10),
				num("height", "Wall Height", "ft", 10),
				num("thickness", "Wall Thickness", "inch", 9),
				num("ratio", "Mix Ratio (1:X)", "", 6),
			},
			Formula: formula.BrickMasonry{},
		},
		{
			ID:          "concrete-mix",
			Name:        "Concrete Mix Estimator",
			Category:    models.CategoryMaterialEstimator,
			Description: "Calculate ingredients for concrete grades (M15, M20, etc).",
			Fields: []models.Field{
				num("volume", "Wet Volume", "m³", 1),
				num("ratio_cement", "Cement Ratio", "", 1),
				num("ratio_sand", "Sand Ratio", "", 1.5),
				num("ratio_agg", "Aggregate Ratio", "", 3),
			},
			Formula: formula.ConcreteMix{},
		},

		// ── Steel & Rebar ────────────────────────────────────
		{
			ID:          "rebar-weight",
			Name:        "Rebar Weight Calculator",
			Category:    models.CategorySteelRebar,
			Description: "Find weight of steel bars by diameter and length.",
			Fields: []models.Field{
				num("dia", "Diameter", "mm", 12),
				num("length", "Total Length", "m", 12),
			},
			Formula: formula.RebarWeight{},
		},

		// ── Rate Analysis ────────────────────────────────────
		{
			ID:          "pcc-rate-analysis",
			Name:        "PCC 1:2:4 Rate Analysis",
			Category:    models.CategoryRateAnalysis,
			Description: "Material quantities and cost per cubic meter of plain cement concrete.",
			Fields: []models.Field{
				num("volume", "Concrete Volume", "m³", 1),
				num("cement_rate", "Cement Rate", "₹/bag", 400),
				num("sand_rate", "Sand Rate", "₹/m³", 1500),
				num("agg_rate", "Aggregate Rate", "₹/m³", 1800),
				num("labour", "Labour & Overheads", "%", 25),
			},
			Formula: formula.PCCRateAnalysis{Money: money},
		},

		// ── Design of RCC ────────────────────────────────────
		{
			ID:          "slab-designer",
			Name:        "Two Way RCC Slab Designer",
			Category:    models.CategoryDesignRCC,
			Description: "Preliminary design of a two-way slab.",
			Fields: []models.Field{
				num("lx", "Short Span (Lx)", "m", 4),
				num("ly", "Long Span (Ly)", "m", 5),
				num("load", "Live Load", "kN/m²", 2),
			},
			Formula: formula.SlabDesigner{},
		},

		// ── Bar Bending Schedule ─────────────────────────────
		{
			ID:          "stirrup-cutting-length",
			Name:        "Stirrup Cutting Length Calculator",
			Category:    models.CategoryBBS,
			Description: "Cutting length and weight of a rectangular stirrup for bar bending schedules.",
			Fields: []models.Field{
				num("width", "Member Width", "mm", 230),
				num("depth", "Member Depth", "mm", 450),
				num("cover", "Clear Cover", "mm", 25),
				num("dia", "Stirrup Diameter", "mm", 8),
			},
			Formula: formula.StirrupCuttingLength{},
		},

		// ── Soil & Foundation ────────────────────────────────
		{
			ID:          "isolated-footing",
			Name:        "Isolated Footing Size Calculator",
			Category:    models.CategorySoilFoundation,
			Description: "Size a square footing from column load and safe bearing capacity.",
			Fields: []models.Field{
				num("load", "Column Load", "kN", 800),
				num("sbc", "Safe Bearing Capacity", "kN/m²", 200),
			},
			Formula: formula.IsolatedFooting{},
		},

		// ── Load Calculations ────────────────────────────────
		{
			ID:          "slab-load",
			Name:        "Slab Load Calculator",
			Category:    models.CategoryLoadCalculations,
			Description: "Dead, live and factored design load on an RCC slab.",
			Fields: []models.Field{
				num("thickness", "Slab Thickness", "mm", 150),
				num("finish", "Floor Finish", "kN/m²", 1),
				num("live", "Live Load", "kN/m²", 2),
			},
			Formula: formula.SlabLoad{},
		},

		// ── Land Area ────────────────────────────────────────
		{
			ID:          "land-area-converter",
			Name:        "Land Area Converter",
			Category:    models.CategoryLandArea,
			Description: "Convert square feet to square meters, acres, hectares and guntha.",
			Fields: []models.Field{
				num("sqft", "Area", "sq ft", 43560),
			},
			Formula: formula.LandArea{},
		},

		// ── Project Management ───────────────────────────────
		{
			ID:          "emi-calculator",
			Name:        "EMI Calculator",
			Category:    models.CategoryProjectManagement,
			Description: "Calculate monthly loan payments for construction.",
			Fields: []models.Field{
				num("amount", "Loan Amount", "", 1000000),
				num("rate", "Interest Rate (%)", "", 8.5),
				num("tenure", "Tenure (Years)", "", 15),
			},
			Formula: formula.EMI{Money: money},
		},

		// ── General Utilities ────────────────────────────────
		{
			ID:          "water-tank-capacity",
			Name:        "Water Tank Capacity Calculator",
			Category:    models.CategoryUtilities,
			Description: "Capacity of a rectangular water tank in liters and gallons.",
			Fields: []models.Field{
				num("length", "Length", "m", 2),
				num("width", "Width", "m", 1.5),
				num("depth", "Water Depth", "m", 1.2),
			},
			Formula: formula.WaterTank{},
		},
	}
}
