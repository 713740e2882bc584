package compare

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var grouped = message.NewPrinter(language.English)

// FormatValue renders a metric value with thousands grouping. Integral values
// print without a fraction; fractional gas values keep two decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return grouped.Sprintf("%d", int64(v))
	}
	return grouped.Sprintf("%.2f", v)
}

// FormatDiff renders the human-readable delta between a base and a candidate
// value. Display only; classification never goes through here.
//
// Edge cases: both zero and zero delta render empty, a value appearing from a
// zero base renders "+Inf%", a value dropping to zero renders "-100%", and
// sub-unit deltas under 0.01% are suppressed as rounding noise.
func FormatDiff(main, pr float64) string {
	switch {
	case main == 0 && pr == 0:
		return ""
	case main == 0:
		return "+Inf%"
	case pr == 0:
		return "-100%"
	}

	delta := pr - main
	if delta == 0 {
		return ""
	}
	pct := delta / main * 100
	if math.Abs(pct) < 0.01 && math.Abs(delta) < 1 {
		return ""
	}
	return fmt.Sprintf("%s (%+.1f%%)", formatSigned(delta), pct)
}

func formatSigned(delta float64) string {
	if delta < 0 {
		return "-" + FormatValue(-delta)
	}
	return "+" + FormatValue(delta)
}
