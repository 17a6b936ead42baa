// Package grid implements the baseline-grid alignment engine: pure numeric
// helpers used by the design compiler to keep layout values consistent with
// the configured alignment unit.
//
// Every function treats unit <= 0 as a caller contract violation. Callers
// (config validation, the compiler) guard the unit before reaching this
// package; no guarding happens here.
package grid

import "math"

// Snap rounds value to the nearest multiple of unit. Ties round half away
// from zero, matching math.Round. Snap is idempotent:
// Snap(Snap(v, u), u) == Snap(v, u).
func Snap(value, unit float64) float64 {
	return math.Round(value/unit) * unit
}

// ToUnits converts a raw value into grid-unit counts.
func ToUnits(value, unit float64) float64 {
	return value / unit
}

// FromUnits converts a grid-unit count back into a raw value. Exact for
// integral unit counts.
func FromUnits(units, unit float64) float64 {
	return units * unit
}

// IsAligned reports whether value sits within tolerance of a grid line.
func IsAligned(value, unit, tolerance float64) bool {
	rem := math.Mod(value, unit)
	if rem < 0 {
		rem += unit
	}
	return rem <= tolerance || unit-rem <= tolerance
}

// DefaultTolerance is the alignment slack used when callers have no opinion.
const DefaultTolerance = 0.5

// Lines describes the grid lines bracketing a value.
type Lines struct {
	// Below is the nearest grid line at or below the value
	Below float64
	// Above is the next grid line above Below
	Above float64
	// Distance is the distance to the closer of the two lines
	Distance float64
}

// NearestLines returns the grid lines bracketing value and the distance to
// the closer one.
func NearestLines(value, unit float64) Lines {
	below := math.Floor(value/unit) * unit
	above := below + unit
	return Lines{
		Below:    below,
		Above:    above,
		Distance: math.Min(value-below, above-value),
	}
}

// SnapDimension snaps a size to the grid while guaranteeing a non-zero
// result: the snapped value never drops below minSize. Callers that have no
// minimum pass the unit itself.
func SnapDimension(value, unit, minSize float64) float64 {
	return math.Max(minSize, Snap(value, unit))
}
