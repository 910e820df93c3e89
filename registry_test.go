package track

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestRegistryAttachesCaches(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Add(2, unitSquareLoop())

	rec := r.records[1]
	assert.Nil(t, rec.cache, "cache attaches on Update, not Add")

	r.Update()
	assert.NotNil(t, rec.cache)
	assert.True(t, rec.cache.Valid())
	assert.Equal(t, 11, rec.cache.Len())
	assert.Equal(t, 41, r.records[2].cache.Len())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryUpdateIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Update()

	c := r.records[1].cache
	buf := &c.samples[0]
	r.Update()

	// No edits: same cache, same buffer, still valid.
	assert.Same(t, c, r.records[1].cache)
	assert.Same(t, buf, &c.samples[0])
	assert.True(t, c.Valid())
}

func TestRegistryRemoveFreesCache(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Update()

	c := r.records[1].cache
	r.Remove(1)
	// The record lingers as an orphan until the next maintenance pass.
	assert.Contains(t, r.records, PathID(1))
	assert.Equal(t, 0, r.Len())

	r.Update()
	assert.NotContains(t, r.records, PathID(1))
	assert.Equal(t, 0, c.Len(), "buffer freed")

	// Removing again or updating again is harmless.
	r.Remove(1)
	r.Update()
}

func TestRegistryRemoveBeforeFirstUpdate(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Remove(1)
	r.Update()
	assert.Empty(t, r.records)
}

func TestRegistryResolutionChangeRebuilds(t *testing.T) {
	p := straightLine(2)
	r := NewRegistry()
	r.Add(1, p)
	r.Update()
	assert.Equal(t, 11, r.records[1].cache.Len())

	p.Resolution = 20
	// Length mismatch alone must force reallocation and rebuild, with no
	// explicit invalidation.
	r.Update()
	assert.Equal(t, 21, r.records[1].cache.Len())
	assert.True(t, r.records[1].cache.Valid())
}

func TestRegistryInvalidate(t *testing.T) {
	p := straightLine(2)
	r := NewRegistry()
	r.Add(1, p)
	r.Update()

	p.Waypoints[1] = Wp(20, 0, 0)
	r.Invalidate(1)
	assert.False(t, r.records[1].cache.Valid())

	r.Update()
	assert.True(t, r.records[1].cache.Valid())
	assert.InDelta(t, 20, r.PathLength(1), 0.01)
}

func TestRegistryQueryRebuildsLazily(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(3))

	// No Update yet: the first query attaches and builds the cache.
	got := r.Position(1, 1, NormalizedUnit)
	assert.InDelta(t, 20, got.X, 0.01)
	assert.True(t, r.records[1].cache.Valid())
}

func TestRegistryQueriesUnknownID(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, math32.Vector3{}, r.Position(42, 0, PathUnit))
	assert.Equal(t, math32.Vector3{}, r.Tangent(42, 0, PathUnit))
	assert.Equal(t, float32(0), r.Convert(42, 1, PathUnit, DistanceUnit))
	assert.Equal(t, float32(0), r.PathLength(42))
	var identity math32.Quat
	identity.SetIdentity()
	assert.Equal(t, identity, r.Orientation(42, 0, PathUnit))
	assert.Nil(t, r.Path(42))
}

func TestRegistryConvert(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(3))
	r.Update()

	assert.InDelta(t, 10, r.Convert(1, 1, PathUnit, DistanceUnit), 0.01)
	assert.InDelta(t, 0.5, r.Convert(1, 10, DistanceUnit, NormalizedUnit), 0.001)
	assert.InDelta(t, 2, r.Convert(1, 1, NormalizedUnit, PathUnit), 0.01)
}

func TestRegistryTangentOrientation(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Update()

	tan := r.Tangent(1, 0.5, NormalizedUnit).Normal()
	assert.InDelta(t, 1, tan.X, 1e-3)

	q := r.Orientation(1, 0.5, NormalizedUnit)
	fwd := math32.Vec3(0, 0, -1).MulQuat(q)
	assert.InDelta(t, 1, fwd.X, 1e-3)
}

func TestRegistryParallelRebuild(t *testing.T) {
	r := NewRegistry()
	r.Workers = 4
	for i := range 50 {
		p := straightLine(2 + i%4)
		p.Looped = i%2 == 0
		r.Add(PathID(i), p)
	}
	r.Update()

	for i := range 50 {
		rec := r.records[PathID(i)]
		assert.True(t, rec.cache.Valid(), "path %d", i)
		assert.Equal(t, rec.path.numKeys(), rec.cache.Len(), "path %d", i)
	}
}

func TestRegistrySharedPathParallelRebuild(t *testing.T) {
	// One path registered under many ids: the fan-out must not rebuild it
	// from two goroutines at once, since every rebuild rewrites the shared
	// waypoint tangents.
	p := straightLine(3)
	r := NewRegistry()
	r.Workers = 8
	for i := range 32 {
		r.Add(PathID(i), p)
	}
	for i := range 16 {
		r.Add(PathID(100+i), straightLine(2))
	}
	r.Update()

	want := p.Waypoints[2].PositionAndRoll.Sub(p.Waypoints[0].PositionAndRoll).MulScalar(1.0 / 6.0)
	diff(t, want, p.Waypoints[1].TangentOut, approx(1e-5))
	for i := range 32 {
		rec := r.records[PathID(i)]
		assert.True(t, rec.cache.Valid(), "path %d", i)
		assert.Equal(t, p.numKeys(), rec.cache.Len(), "path %d", i)
	}
}

func TestRegistryAll(t *testing.T) {
	r := NewRegistry()
	r.Add(1, straightLine(2))
	r.Add(2, straightLine(3))
	r.Remove(2)

	ids := map[PathID]bool{}
	for id := range r.All() {
		ids[id] = true
	}
	assert.Equal(t, map[PathID]bool{1: true}, ids)
}
