package engine_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTool(t *testing.T, id string) models.Tool {
	t.Helper()
	tool, err := catalog.Default().Lookup(id)
	require.NoError(t, err)
	return tool
}

// countingFormula records how often it runs.
type countingFormula struct{ calls int }

func (f *countingFormula) Kind() string       { return "counting" }
func (f *countingFormula) Requires() []string { return []string{"x"} }
func (f *countingFormula) Evaluate(in models.Inputs) []models.Output {
	f.calls++
	return []models.Output{{Label: "Double", Display: "", Value: in.Get("x") * 2, Numeric: true}}
}

func TestEvaluate_NoFormula(t *testing.T) {
	res := engine.Evaluate(models.Tool{ID: "empty"}, models.Inputs{"x": 1})
	assert.Equal(t, "empty", res.ToolID)
	assert.NotNil(t, res.Outputs)
	assert.Empty(t, res.Outputs)
}

func TestEvaluate_InvokesFormulaOnce(t *testing.T) {
	f := &countingFormula{}
	tool := models.Tool{ID: "double", Fields: []models.Field{{ID: "x", Type: models.FieldNumber}}, Formula: f}

	res := engine.Evaluate(tool, models.Inputs{"x": 4})
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 8.0, res.Outputs[0].Value)
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, tool := range catalog.Default().Tools() {
		in := engine.InitialInputs(tool)
		assert.Equal(t, engine.Evaluate(tool, in), engine.Evaluate(tool, in), tool.ID)
	}
}

func TestEvaluate_PropagatesNonFinite(t *testing.T) {
	tool := mustTool(t, "concrete-mix")
	res := engine.Evaluate(tool, models.Inputs{"volume": 1, "ratio_cement": 0, "ratio_sand": 0, "ratio_agg": 0})

	out, ok := res.Lookup("Sand (m³)")
	require.True(t, ok)
	assert.Equal(t, "NaN", out.Display)
	assert.True(t, math.IsNaN(out.Value))
}

func TestInitialInputs_OneEntryPerField(t *testing.T) {
	for _, tool := range catalog.Default().Tools() {
		in := engine.InitialInputs(tool)
		assert.Len(t, in, len(tool.Fields), tool.ID)
		for _, f := range tool.Fields {
			assert.Equal(t, f.Default, in[f.ID], "%s.%s", tool.ID, f.ID)
		}
	}
}

func TestInitialInputs_CoercesTextDefaults(t *testing.T) {
	tool := models.Tool{
		ID: "mixed",
		Fields: []models.Field{
			{ID: "grade", Type: models.FieldSelect, Options: []string{"20", "25"}, DefaultText: "25"},
			{ID: "note", Type: models.FieldText, DefaultText: "n/a"},
			{ID: "blank", Type: models.FieldText},
			{ID: "n", Type: models.FieldNumber, Default: 3},
		},
	}
	assert.Equal(t, models.Inputs{"grade": 25, "note": 0, "blank": 0, "n": 3}, engine.InitialInputs(tool))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12", 12},
		{"", 0},
		{"abc", 0},
		{"3.5m", 3.5},
		{" -2", -2},
	}
	for _, tt := range tests {
		if got := engine.ParseInput(tt.raw); got != tt.want {
			t.Errorf("ParseInput(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestMergeInputs(t *testing.T) {
	tool := mustTool(t, "rebar-weight")
	in := engine.MergeInputs(tool, map[string]string{"dia": "16", "bogus": "1"})
	assert.Equal(t, models.Inputs{"dia": 16, "length": 12}, in)
}

func TestCalculator_EditRecomputes(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "rebar-weight"))

	out, _ := c.Result().Lookup("Total Weight")
	assert.Equal(t, "10.65 kg", out.Display)

	res, err := c.Edit("length", "24")
	require.NoError(t, err)
	out, _ = res.Lookup("Total Weight")
	assert.Equal(t, "21.31 kg", out.Display)
	assert.Equal(t, models.Inputs{"dia": 12, "length": 24}, c.Inputs())
}

func TestCalculator_EditBadTextIsZero(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "inches-to-units"))

	res, err := c.Edit("inches", "abc")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Inputs()["inches"])
	out, _ := res.Lookup("Feet")
	assert.Equal(t, "0.0000", out.Display)
}

func TestCalculator_EditUnknownField(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "inches-to-units"))
	before := c.Inputs()

	_, err := c.Edit("feet", "3")
	assert.True(t, errors.Is(err, engine.ErrUnknownField))
	assert.Equal(t, before, c.Inputs())
}

func TestCalculator_EditReplacesInputsWholesale(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "slab-designer"))
	snapshot := c.Inputs()

	_, err := c.Edit("lx", "3")
	require.NoError(t, err)
	assert.Equal(t, 4.0, snapshot["lx"], "earlier snapshot must not change")
	assert.Equal(t, 5.0, c.Inputs()["ly"])
}

func TestCalculator_LastWriteWins(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "rebar-weight"))
	for _, raw := range []string{"1", "12", "123", "12"} {
		_, err := c.Edit("dia", raw)
		require.NoError(t, err)
	}
	out, _ := c.Result().Lookup("Weight per Meter")
	assert.Equal(t, "0.888 kg/m", out.Display)
}

func TestReport(t *testing.T) {
	c := engine.NewCalculator(mustTool(t, "rebar-weight"))

	var b strings.Builder
	require.NoError(t, c.Report(&b))
	got := b.String()

	assert.Contains(t, got, "Rebar Weight Calculator")
	assert.Contains(t, got, "Category: Steel & Rebar")
	assert.Contains(t, got, "12 mm")
	assert.Contains(t, got, "10.65 kg")
	assert.Less(t, strings.Index(got, "Total Weight"), strings.Index(got, "Weight per Meter"))
}

func TestReport_NoOutputs(t *testing.T) {
	var b strings.Builder
	require.NoError(t, engine.WriteReport(&b, models.Tool{ID: "bare"}, models.Inputs{}, models.Result{}))
	assert.Contains(t, b.String(), "bare")
	assert.Contains(t, b.String(), "(none)")
}
