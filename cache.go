package track

import (
	"cogentcore.org/core/math32"
)

// DistanceCache is the per-path lookup table mapping curve parameter to
// cumulative arc length and back.
//
// Each sample pair stores, in X, the arc length accumulated at uniform
// parameter steps, and in Y, the curve parameter reached at uniform distance
// steps. The two step sizes are stored once in sampleStep (X: parameter step,
// Y: distance step) rather than per sample.
//
// The sample buffer is exclusively owned by its cache: it is reallocated
// whenever the required sample count changes and released when the owning
// path goes away. A cache is never shared between paths.
type DistanceCache struct {
	samples    []math32.Vector2
	sampleStep math32.Vector2
	valid      bool
	looped     bool
}

// Len returns the number of sample pairs.
func (c *DistanceCache) Len() int {
	return len(c.samples)
}

// Valid reports whether the table reflects the path as of the last rebuild.
func (c *DistanceCache) Valid() bool {
	return c.valid
}

// SampleStep returns the table's step sizes: X is the parameter step between
// forward samples, Y the distance step between resampled entries.
func (c *DistanceCache) SampleStep() math32.Vector2 {
	return c.sampleStep
}

// Invalidate marks the table stale. The next rebuild recomputes it; queries
// through a [Registry] trigger that rebuild at most once.
func (c *DistanceCache) Invalidate() {
	c.valid = false
}

// Release frees the sample buffer and marks the cache stale.
func (c *DistanceCache) Release() {
	c.samples = nil
	c.sampleStep = math32.Vector2{}
	c.valid = false
}

// PathLength returns the total arc length of the cached path, 0 if the table
// holds fewer than 2 samples.
func (c *DistanceCache) PathLength() float32 {
	if len(c.samples) < 2 {
		return 0
	}
	return c.samples[len(c.samples)-1].X
}

// maxUnit returns the parameter span covered by the table.
func (c *DistanceCache) maxUnit() float32 {
	if len(c.samples) < 2 {
		return 0
	}
	return c.sampleStep.X * float32(len(c.samples)-1)
}

// Recalculate rebuilds the table for p and marks the cache valid.
//
// It first re-solves p's tangents, then samples the curve at the fixed
// parameter step 1/resolution, accumulating Euclidean distance between
// consecutive positions (the forward pass), and finally resamples the table
// at uniform distance steps, interpolating the parameter for each target
// distance (the resample pass). The bracket cursor of the resample pass only
// moves forward; the forward table is monotonic so this never misses a
// bracket.
//
// A path with fewer than 2 waypoints yields an explicit zero-length table,
// still marked valid. The sample buffer is reallocated only when the
// required sample count differs from the current one.
func (c *DistanceCache) Recalculate(p *Path) {
	c.looped = p.Looped
	c.sampleStep = math32.Vector2{}
	numKeys := p.numKeys()
	if numKeys < 2 {
		c.samples = nil
		c.valid = true
		return
	}
	if len(c.samples) != numKeys {
		c.samples = make([]math32.Vector2, numKeys)
	}

	p.SmoothTangents()

	// Forward pass: cumulative arc length at uniform parameter steps.
	paramStep := 1 / float32(p.resolution())
	c.samples[0] = math32.Vector2{}
	pos := float32(0)
	distance := float32(0)
	prev := p.Position(0)
	for i := 1; i < numKeys; i++ {
		pos += paramStep
		cur := p.Position(pos)
		distance += cur.DistanceTo(prev)
		prev = cur
		c.samples[i].X = distance
	}
	c.sampleStep.X = paramStep

	if distance < epsilon {
		// Degenerate zero-length curve: every distance maps to parameter 0.
		for i := range c.samples {
			c.samples[i].Y = 0
		}
		c.valid = true
		return
	}

	// Resample pass: parameter at uniform distance steps.
	distStep := distance / float32(numKeys-1)
	c.sampleStep.Y = distStep
	c.samples[0].Y = 0
	cursor := 0
	for i := 1; i < numKeys; i++ {
		target := float32(i) * distStep
		for cursor < numKeys-2 && c.samples[cursor+1].X < target {
			cursor++
		}
		d0 := c.samples[cursor].X
		d1 := c.samples[cursor+1].X
		frac := float32(0)
		if d1-d0 > epsilon {
			frac = math32.Clamp((target-d0)/(d1-d0), 0, 1)
		}
		c.samples[i].Y = (float32(cursor) + frac) * paramStep
	}
	c.valid = true
	logger().Debug("distance cache rebuilt",
		"samples", numKeys, "length", distance, "looped", c.looped)
}

// ToDistance converts a position in path units to arc-length distance by
// interpolating the forward table. It returns 0 when the table holds fewer
// than 2 samples.
func (c *DistanceCache) ToDistance(pathUnits float32) float32 {
	if len(c.samples) < 2 || c.sampleStep.X < epsilon {
		return 0
	}
	pathUnits = ClampUnit(pathUnits, c.maxUnit(), c.looped)
	idx := int(math32.Floor(pathUnits / c.sampleStep.X))
	idx = math32.Clamp(idx, 0, len(c.samples)-2)
	frac := pathUnits/c.sampleStep.X - float32(idx)
	return math32.Lerp(c.samples[idx].X, c.samples[idx+1].X, frac)
}

// FromDistance converts an arc-length distance to a position in path units
// by interpolating the resampled table. It returns 0 when the table holds
// fewer than 2 samples or the path has no length.
func (c *DistanceCache) FromDistance(distance float32) float32 {
	if len(c.samples) < 2 || c.sampleStep.Y < epsilon {
		return 0
	}
	distance = ClampUnit(distance, c.PathLength(), c.looped)
	idx := int(math32.Floor(distance / c.sampleStep.Y))
	idx = math32.Clamp(idx, 0, len(c.samples)-2)
	frac := distance/c.sampleStep.Y - float32(idx)
	return math32.Lerp(c.samples[idx].Y, c.samples[idx+1].Y, frac)
}
