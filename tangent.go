package track

import (
	"cogentcore.org/core/math32"
)

// SmoothTangents recomputes every waypoint's TangentIn and TangentOut so
// that the piecewise cubic bezier through the waypoints is C1-continuous at
// each interior waypoint, using Catmull-Rom handle offsets. A looped path
// indexes its neighbors modulo the waypoint count, which carries the same
// continuity across the seam. An open path uses one-sided handles at its two
// end waypoints.
//
// All four channels are smoothed, so roll handles (the W channel) follow the
// same rule as position. Paths with fewer than 2 waypoints get zero-length
// tangents.
//
// SmoothTangents mutates the waypoints in place and is the only writer of
// the tangent fields.
func (p *Path) SmoothTangents() {
	n := len(p.Waypoints)
	if n < 2 {
		for i := range p.Waypoints {
			p.Waypoints[i].TangentIn = math32.Vector4{}
			p.Waypoints[i].TangentOut = math32.Vector4{}
		}
		return
	}
	if p.Looped {
		for i := range p.Waypoints {
			prev := p.Waypoints[(i+n-1)%n].PositionAndRoll
			next := p.Waypoints[(i+1)%n].PositionAndRoll
			out := next.Sub(prev).MulScalar(1.0 / 6.0)
			p.Waypoints[i].TangentOut = out
			p.Waypoints[i].TangentIn = out.Negate()
		}
		return
	}
	for i := 1; i < n-1; i++ {
		out := p.Waypoints[i+1].PositionAndRoll.Sub(p.Waypoints[i-1].PositionAndRoll).MulScalar(1.0 / 6.0)
		p.Waypoints[i].TangentOut = out
		p.Waypoints[i].TangentIn = out.Negate()
	}
	// One-sided handles at the ends: the handle points a third of the way
	// along the end segment, matching the clamped Catmull-Rom end condition.
	first := p.Waypoints[1].PositionAndRoll.Sub(p.Waypoints[0].PositionAndRoll).MulScalar(1.0 / 3.0)
	p.Waypoints[0].TangentOut = first
	p.Waypoints[0].TangentIn = first.Negate()
	last := p.Waypoints[n-1].PositionAndRoll.Sub(p.Waypoints[n-2].PositionAndRoll).MulScalar(1.0 / 3.0)
	p.Waypoints[n-1].TangentOut = last
	p.Waypoints[n-1].TangentIn = last.Negate()
}
