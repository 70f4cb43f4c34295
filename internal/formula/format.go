package formula

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// ToFixed formats x with a fixed number of decimals the way the dashboard
// always has: the exact binary value is rounded half away from zero, so
// 0.125 becomes "0.13" rather than strconv's half-even "0.12".
func ToFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if math.Abs(x) >= 1e21 {
		return FormatNumber(x)
	}
	if digits < 0 {
		digits = 0
	}

	exact := strconv.FormatFloat(math.Abs(x), 'f', exactDigits, 64)
	dot := strings.IndexByte(exact, '.')
	whole, frac := exact[:dot], exact[dot+1:]

	kept := []byte(whole + frac[:digits])
	if frac[digits] >= '5' {
		kept = increment(kept)
	}

	s := string(kept)
	if digits > 0 {
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if x < 0 {
		s = "-" + s
	}
	return s
}

// increment adds one to a string of decimal digits.
func increment(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}

// FormatNumber renders a plain number: shortest round-trip digits, with
// NaN and the infinities spelled out.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	// 1.5e-07 → 1.5e-7
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// Round rounds half up, matching Math.round.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Ceil is math.Ceil; kept here so formulas read uniformly.
func Ceil(x float64) float64 {
	return math.Ceil(x)
}

// ── Money ───────────────────────────────────────────────────

// RupeeSymbol prefixes every currency output.
const RupeeSymbol = "₹ "

// Money formats rounded currency amounts with locale grouping.
type Money struct {
	printer *message.Printer
}

// NewMoney returns a formatter for the given locale.
func NewMoney(tag language.Tag) Money {
	return Money{printer: message.NewPrinter(tag)}
}

// DefaultMoney uses US English grouping.
func DefaultMoney() Money {
	return NewMoney(language.AmericanEnglish)
}

// Format rounds x to a whole amount and groups the digits.
func (m Money) Format(x float64) string {
	return RupeeSymbol + m.Integer(Round(x))
}

// Integer groups an already rounded amount.
func (m Money) Integer(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	p := m.printer
	if p == nil {
		p = message.NewPrinter(language.AmericanEnglish)
	}
	if math.Abs(x) < 1<<62 {
		return p.Sprintf("%d", int64(x))
	}
	return p.Sprintf("%.0f", x)
}

// ── Input parsing ───────────────────────────────────────────

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseFloat reads the longest numeric prefix of raw after leading
// whitespace, like parseFloat. ok is false when there is no number at all.
func ParseFloat(raw string) (v float64, ok bool) {
	s := strings.TrimLeftFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN(), false
	}
	if strings.TrimLeft(m, "+-") == "Infinity" {
		if m[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	// Out-of-range exponents still yield ±Inf or 0, which is what we want.
	v, _ = strconv.ParseFloat(m, 64)
	return v, true
}
