package economy

import (
	"fmt"
	"strconv"
)

// ValueScale is the factor material values are stored with. A material value
// of 40 means 0.40 points per unit.
const ValueScale = 100

// Caps keeping SUM(amount * value) inside int64. A capped row is worth at
// most 10^13 hundredths, so a guild holds over 900k of them before overflow.
const (
	MaxContributionAmount = 1_000_000_000
	MaxMaterialValue      = 10_000
)

// Points counts hundredths of a point. Totals are summed as integers and only
// de-scaled when presented, so no floating point drift accumulates.
type Points int64

// Calculate returns the points earned by amount units of a material with the
// given scaled value.
func Calculate(amount int64, scaledValue int) Points {
	return Points(amount * int64(scaledValue))
}

// Float64 de-scales p. It is the only place a float is produced.
func (p Points) Float64() float64 {
	return float64(p) / ValueScale
}

// Hundredths returns the raw scaled integer.
func (p Points) Hundredths() int64 {
	return int64(p)
}

func (p Points) String() string {
	return formatScaled(int64(p))
}

// UnitValue formats a material's scaled per-unit value, e.g. 40 -> "0.40".
func UnitValue(scaledValue int) string {
	return formatScaled(int64(scaledValue))
}

func formatScaled(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s.%02d", sign, strconv.FormatInt(v/ValueScale, 10), v%ValueScale)
}
