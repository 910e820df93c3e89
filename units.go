package track

import "fmt"

// Unit selects how a scalar position along a path is measured.
type Unit uint8

const (
	// PathUnit measures positions in waypoint indices: 0 is the first
	// waypoint, 1 the second, and fractions interpolate the segment in
	// between.
	PathUnit Unit = iota

	// DistanceUnit measures positions in real arc length along the curve.
	DistanceUnit

	// NormalizedUnit measures positions as a fraction in [0, 1] of the
	// path's total arc length.
	NormalizedUnit
)

func (u Unit) String() string {
	switch u {
	case PathUnit:
		return "PathUnit"
	case DistanceUnit:
		return "DistanceUnit"
	case NormalizedUnit:
		return "NormalizedUnit"
	default:
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
}

// unitSpan returns the maximum value of the given unit system for the cached
// path, 0 when the table is degenerate.
func (c *DistanceCache) unitSpan(u Unit) float32 {
	if len(c.samples) < 2 {
		return 0
	}
	switch u {
	case PathUnit:
		return c.maxUnit()
	case DistanceUnit:
		return c.PathLength()
	default:
		return 1
	}
}

// StandardizeUnit clamps v into the valid range of the given unit system,
// wrapping instead of clamping when the cached path is looped.
func (c *DistanceCache) StandardizeUnit(v float32, u Unit) float32 {
	return ClampUnit(v, c.unitSpan(u), c.looped)
}

// ToPathUnits converts v, measured in the given unit system, to path units.
func (c *DistanceCache) ToPathUnits(v float32, from Unit) float32 {
	switch from {
	case DistanceUnit:
		return c.FromDistance(v)
	case NormalizedUnit:
		return c.FromDistance(c.StandardizeUnit(v, NormalizedUnit) * c.PathLength())
	default:
		return c.StandardizeUnit(v, PathUnit)
	}
}

// FromPathUnits converts v, measured in path units, to the given unit
// system.
func (c *DistanceCache) FromPathUnits(v float32, to Unit) float32 {
	switch to {
	case DistanceUnit:
		return c.ToDistance(v)
	case NormalizedUnit:
		length := c.PathLength()
		if length < epsilon {
			return 0
		}
		return c.ToDistance(v) / length
	default:
		return c.StandardizeUnit(v, PathUnit)
	}
}

// ConvertUnit converts v from one unit system to another, funneling through
// path units.
func (c *DistanceCache) ConvertUnit(v float32, from, to Unit) float32 {
	if from == to {
		return c.StandardizeUnit(v, to)
	}
	return c.FromPathUnits(c.ToPathUnits(v, from), to)
}
