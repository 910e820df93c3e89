package track

import (
	"cogentcore.org/core/math32"
)

// ClampUnit restricts v to [0, maxValue]. For a looped path it wraps instead
// of clamping, treating 0 and maxValue as the same point and shifting
// negative values into [0, maxValue). Non-finite values yield 0.
func ClampUnit(v, maxValue float32, looped bool) float32 {
	if maxValue <= 0 || math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	if looped {
		v = math32.Mod(v, maxValue)
		if v < 0 {
			v += maxValue
		}
		return v
	}
	return math32.Clamp(v, 0, maxValue)
}

// boundingIndices standardizes pos and splits it into the pair of waypoint
// indices bounding its segment and the local bezier parameter t within it.
// On a looped path the segment after the last waypoint wraps to index 0; on
// an open path the top boundary pins to the final segment with t == 1.
//
// Callers must ensure there are at least 2 waypoints.
func (p *Path) boundingIndices(pos float32) (t float32, indexA, indexB int) {
	n := len(p.Waypoints)
	pos = p.Standardize(pos)
	indexA = int(math32.Floor(pos))
	if indexA >= n {
		indexA -= n
	}
	indexB = indexA + 1
	if indexB == n {
		if p.Looped {
			indexB = 0
		} else {
			indexB--
			indexA--
		}
	}
	t = pos - float32(indexA)
	return t, indexA, indexB
}

// bezier evaluates the cubic bezier with control points p0..p3 at t.
func bezier(t float32, p0, p1, p2, p3 math32.Vector4) math32.Vector4 {
	d := 1 - t
	return p0.MulScalar(d * d * d).
		Add(p1.MulScalar(3 * d * d * t)).
		Add(p2.MulScalar(3 * d * t * t)).
		Add(p3.MulScalar(t * t * t))
}

// bezierTangent evaluates the derivative of the cubic bezier with control
// points p0..p3 at t.
func bezierTangent(t float32, p0, p1, p2, p3 math32.Vector4) math32.Vector4 {
	d := 1 - t
	return p1.Sub(p0).MulScalar(3 * d * d).
		Add(p2.Sub(p1).MulScalar(6 * d * t)).
		Add(p3.Sub(p2).MulScalar(3 * t * t))
}

// segment returns the four bezier control points of the segment bounding
// pos, and the local parameter within it.
func (p *Path) segment(pos float32) (t float32, p0, p1, p2, p3 math32.Vector4) {
	t, a, b := p.boundingIndices(pos)
	wa, wb := p.Waypoints[a], p.Waypoints[b]
	p0 = wa.PositionAndRoll
	p1 = wa.PositionAndRoll.Add(wa.TangentOut)
	p2 = wb.PositionAndRoll.Add(wb.TangentIn)
	p3 = wb.PositionAndRoll
	return t, p0, p1, p2, p3
}

// Position evaluates the curve position at pos, in path units. It returns
// the zero vector for an empty path and the single waypoint's position for a
// one-waypoint path.
func (p *Path) Position(pos float32) math32.Vector3 {
	switch len(p.Waypoints) {
	case 0:
		return math32.Vector3{}
	case 1:
		return p.Waypoints[0].Position()
	}
	t, p0, p1, p2, p3 := p.segment(pos)
	v := bezier(t, p0, p1, p2, p3)
	return math32.Vec3(v.X, v.Y, v.Z)
}

// Tangent evaluates the curve derivative at pos, in path units. The result
// is not normalized. It returns the zero vector for paths with fewer than 2
// waypoints.
func (p *Path) Tangent(pos float32) math32.Vector3 {
	if len(p.Waypoints) < 2 {
		return math32.Vector3{}
	}
	t, p0, p1, p2, p3 := p.segment(pos)
	v := bezierTangent(t, p0, p1, p2, p3)
	return math32.Vec3(v.X, v.Y, v.Z)
}

// Orientation evaluates the curve orientation at pos, in path units: a
// look-rotation along the tangent with +Y up, rolled about the forward axis
// by the interpolated roll channel. The rotation follows the camera
// convention of math32: local -Z maps to the tangent direction. It returns
// the identity rotation when the tangent is near zero or the path has fewer
// than 2 waypoints.
func (p *Path) Orientation(pos float32) math32.Quat {
	var q math32.Quat
	q.SetIdentity()
	if len(p.Waypoints) < 2 {
		return q
	}
	t, p0, p1, p2, p3 := p.segment(pos)
	fwd := bezierTangent(t, p0, p1, p2, p3)
	dir := math32.Vec3(fwd.X, fwd.Y, fwd.Z)
	if dir.Length() < epsilon {
		return q
	}
	q.SetFromRotationMatrix(math32.NewLookAt(math32.Vector3{}, dir, math32.Vec3(0, 1, 0)))
	roll := bezier(t, p0, p1, p2, p3).W
	if roll != 0 {
		var rq math32.Quat
		rq.SetFromAxisAngle(math32.Vec3(0, 0, -1), roll)
		q.SetMul(rq)
	}
	return q
}
