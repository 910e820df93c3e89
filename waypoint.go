package track

import (
	"cogentcore.org/core/math32"
)

// epsilon is the threshold below which lengths and spans are treated as zero.
const epsilon = 1e-4

// Waypoint is an authored control point of a [Path].
//
// PositionAndRoll packs the 3D position in X, Y, Z and a roll angle in
// radians in W. TangentIn and TangentOut are bezier handle offsets relative
// to the position, not absolute points; the offset length encodes the handle
// strength. Their W channels carry the roll handles so that roll is
// interpolated by the same bezier as position.
//
// The tangents are derived, not authored: [Path.SmoothTangents] is their only
// writer.
type Waypoint struct {
	PositionAndRoll math32.Vector4
	TangentIn       math32.Vector4
	TangentOut      math32.Vector4
}

// Wp returns a waypoint at position (x, y, z) with zero roll.
func Wp(x, y, z float32) Waypoint {
	return Waypoint{PositionAndRoll: math32.Vec4(x, y, z, 0)}
}

// Position returns the waypoint's position.
func (w Waypoint) Position() math32.Vector3 {
	return math32.Vec3(w.PositionAndRoll.X, w.PositionAndRoll.Y, w.PositionAndRoll.Z)
}

// Roll returns the waypoint's roll angle in radians.
func (w Waypoint) Roll() float32 {
	return w.PositionAndRoll.W
}

// Path is a piecewise cubic bezier curve through an ordered sequence of
// waypoints.
//
// Positions along the path are measured in path units: 0 is the first
// waypoint, 1 the second, and fractional values interpolate the segment in
// between. A looped path additionally has a segment from the last waypoint
// back to the first, so its maximum position is len(Waypoints) rather than
// len(Waypoints)-1.
type Path struct {
	// Looped connects the last waypoint back to the first, forming a
	// closed curve.
	Looped bool

	// Resolution is the number of distance-cache samples per waypoint
	// segment. Values below 1 are treated as 1.
	Resolution int

	Waypoints []Waypoint
}

// resolution returns the effective sample resolution.
func (p *Path) resolution() int {
	return max(1, p.Resolution)
}

// MaxUnit returns the maximum position on the path in path units:
// len(Waypoints) for a looped path, len(Waypoints)-1 otherwise, and 0 for a
// path with fewer than 2 waypoints.
func (p *Path) MaxUnit() float32 {
	n := len(p.Waypoints)
	if n < 2 {
		return 0
	}
	if p.Looped {
		return float32(n)
	}
	return float32(n - 1)
}

// numKeys returns the number of samples a distance cache for this path must
// hold.
func (p *Path) numKeys() int {
	span := p.MaxUnit()
	if span <= 0 {
		return 0
	}
	return int(math32.Round(float32(p.resolution())*span)) + 1
}

// Standardize clamps pos into [0, MaxUnit], wrapping instead of clamping for
// a looped path.
func (p *Path) Standardize(pos float32) float32 {
	return ClampUnit(pos, p.MaxUnit(), p.Looped)
}

// FindClosestPoint returns the position, in path units, closest to target.
//
// The search samples the curve coarsely and refines around the best
// candidate, so it finds the exact nearest point only up to sampling
// precision. startSegment and searchRadius restrict the search to the
// segments within searchRadius of startSegment; a negative searchRadius
// searches the whole path. stepsPerSegment controls the coarse sampling
// density and is clamped into [1, 100].
func (p *Path) FindClosestPoint(target math32.Vector3, startSegment, searchRadius, stepsPerSegment int) float32 {
	if len(p.Waypoints) < 2 {
		return 0
	}
	start := float32(0)
	end := p.MaxUnit()
	if searchRadius >= 0 {
		r := min(float32(searchRadius), end/2)
		start = float32(startSegment) - r
		end = float32(startSegment) + r + 1
		if !p.Looped {
			start = max(start, 0)
			end = min(end, p.MaxUnit())
		}
	}
	stepsPerSegment = math32.Clamp(stepsPerSegment, 1, 100)
	stepSize := 1 / float32(stepsPerSegment)
	bestPos := float32(startSegment)
	bestDist := math32.Infinity
	lo, hi := start, end
	for range 3 {
		for pos := start; pos <= end; pos += stepSize {
			d := target.DistanceToSquared(p.Position(pos))
			if d < bestDist {
				bestDist = d
				bestPos = pos
			}
		}
		// Refine around the best candidate, staying inside the window.
		start = max(bestPos-stepSize, lo)
		end = min(bestPos+stepSize, hi)
		stepSize /= float32(stepsPerSegment)
	}
	return p.Standardize(bestPos)
}
