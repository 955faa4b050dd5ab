package coronavirus

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// the source page prints a lone dash where a counter has no data
const noDataPlaceholder = "-"

// ParseCount converts a raw table cell into an integer counter.
// Thousands separators are plain or non-breaking spaces, so every
// whitespace rune is stripped before parsing.
func ParseCount(cell string) (int, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == noDataPlaceholder {
		return 0, nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, &FormatError{Token: cell}
	}
	return n, nil
}

// Ratio divides two counters into a fraction in [0,1] rounded to
// 4 decimal places. A zero denominator returns ErrZeroDenominator;
// call sites where zero is legitimate must guard it.
func Ratio(num, den int) (float64, error) {
	if den == 0 {
		return 0, ErrZeroDenominator
	}
	return math.Round(float64(num)/float64(den)*10000) / 10000, nil
}

// guardedRatio substitutes 0.0 for a zero denominator. Used at every
// derivation site where the denominator can legitimately be zero
// (no hospitalizations, no confirmed cases in 24h, ...).
func guardedRatio(num, den int) float64 {
	r, err := Ratio(num, den)
	if err != nil {
		return 0
	}
	return r
}
