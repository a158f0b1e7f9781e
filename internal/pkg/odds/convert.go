// Package odds converts bookmaker decimal odds to American moneyline format.
package odds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidOdds is returned for decimal odds that cannot be priced as a
// moneyline: values at or below 1.0, or text that does not parse as a number.
var ErrInvalidOdds = errors.New("invalid decimal odds")

// Normalize converts decimal odds to a signed American moneyline integer.
// 2.00 is the even-money boundary: at or above it the price is the positive
// underdog line, below it the negative favorite line.
func Normalize(decimal float64) (int, error) {
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) || decimal <= 1.0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOdds, decimal)
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1) * 100)), nil
	}
	return int(math.Round(-100 / (decimal - 1))), nil
}

// NormalizeString parses odds text as rendered on the page and converts it.
func NormalizeString(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}
	return Normalize(v)
}
