package formula_test

import (
	"math"
	"testing"

	"github.com/civiltoolbox/toolbox/internal/formula"
	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	tests := []struct {
		x      float64
		digits int
		want   string
	}{
		{0.125, 2, "0.13"},
		{1.005, 2, "1.00"},
		{2.5, 0, "3"},
		{-1.5, 0, "-2"},
		{1.0 / 12, 4, "0.0833"},
		{0.0347, 4, "0.0347"},
		{34.72222, 2, "34.72"},
		{10.125, 2, "10.13"},
		{999.9999, 2, "1000.00"},
		{0, 3, "0.000"},
		{42, 0, "42"},
		{1e21, 2, "1e+21"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "Infinity"},
		{math.Inf(-1), 0, "-Infinity"},
	}
	for _, tt := range tests {
		if got := formula.ToFixed(tt.x, tt.digits); got != tt.want {
			t.Errorf("ToFixed(%v, %d) = %q, want %q", tt.x, tt.digits, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{1013, "1013"},
		{0.5, "0.5"},
		{115, "115"},
		{-3, "-3"},
		{1.5e-7, "1.5e-7"},
		{1e-6, "0.000001"},
		{-1e-6, "-0.000001"},
		{9.99e-7, "9.99e-7"},
		{1.918259263038635e-7, "1.918259263038635e-7"},
		{2e21, "2e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
	}
	for _, tt := range tests {
		if got := formula.FormatNumber(tt.x); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.0, formula.Round(2.5))
	assert.Equal(t, -1.0, formula.Round(-1.5))
	assert.Equal(t, 9847.0, formula.Round(9847.42))
}

func TestMoney_Format(t *testing.T) {
	m := formula.DefaultMoney()

	assert.Equal(t, "₹ 9,847", m.Format(9847.42))
	assert.Equal(t, "₹ 1,800,000", m.Format(1800000))
	assert.Equal(t, "₹ 0", m.Format(0.4))
	assert.Equal(t, "₹ NaN", m.Format(math.NaN()))
	assert.Equal(t, "₹ ∞", m.Format(math.Inf(1)))
}

func TestMoney_ZeroValue(t *testing.T) {
	var m formula.Money
	assert.Equal(t, "1,234", m.Integer(1234))
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"12", 12, true},
		{"12abc", 12, true},
		{"  3.5", 3.5, true},
		{".5", 0.5, true},
		{"1.", 1, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"-4.25kg", -4.25, true},
		{"+7", 7, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := formula.ParseFloat(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseFloat(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseFloat_Infinity(t *testing.T) {
	v, ok := formula.ParseFloat("-Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, -1))

	v, ok = formula.ParseFloat("Infinityx")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, 1))
}
