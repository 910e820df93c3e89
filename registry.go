package track

import (
	"iter"
	"sync"

	"cogentcore.org/core/math32"
)

// PathID is a stable identifier for a path within a [Registry]. The host's
// entity layer supplies it.
type PathID uint64

// record pairs a path with the distance cache the registry owns for it. A
// nil path marks a removed entry whose cache is still waiting to be freed; a
// nil cache marks a freshly added path that the next maintenance pass (or
// first query) equips.
type record struct {
	path  *Path
	cache *DistanceCache
}

// stale reports whether the cache must be rebuilt: it is either invalid or
// sized for a different waypoint count or resolution than the path currently
// has.
func (rec *record) stale() bool {
	return !rec.cache.valid || rec.cache.Len() != rec.path.numKeys()
}

// Registry owns the distance caches for a dynamic population of paths and
// reconciles them once per update cycle.
//
// Registry does no internal locking. [Registry.Update] and the mutating
// methods ([Registry.Add], [Registry.Remove], [Registry.Invalidate]) are the
// write side; the query methods are the read side, though a query on a stale
// cache rebuilds it in place. The host must place a barrier between its
// maintenance phase and its read phase; within the read phase, queries on
// distinct up-to-date paths may run concurrently.
type Registry struct {
	// Workers caps the number of goroutines Update uses to rebuild stale
	// caches. Values below 2 keep rebuilds on the calling goroutine.
	// Rebuilds of distinct paths share no state, so they parallelize
	// freely.
	Workers int

	records map[PathID]*record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[PathID]*record)}
}

// Add registers p under id. Re-adding an existing id replaces its path and
// invalidates the cache; the buffer is reused if the sample count still
// matches. The same path may be registered under several ids; their cache
// rebuilds are then serialized with respect to each other.
func (r *Registry) Add(id PathID, p *Path) {
	if rec, ok := r.records[id]; ok {
		rec.path = p
		if rec.cache != nil {
			rec.cache.Invalidate()
		}
		return
	}
	r.records[id] = &record{path: p}
}

// Remove unregisters the path under id. Its cache buffer stays allocated
// until the next [Registry.Update] frees it.
func (r *Registry) Remove(id PathID) {
	if rec, ok := r.records[id]; ok {
		rec.path = nil
	}
}

// Invalidate marks id's cache stale. External editors that mutate a path's
// waypoints directly must call it so the next maintenance pass or query
// rebuilds the table.
func (r *Registry) Invalidate(id PathID) {
	if rec, ok := r.records[id]; ok && rec.cache != nil {
		rec.cache.Invalidate()
	}
}

// Path returns the path registered under id, or nil.
func (r *Registry) Path(id PathID) *Path {
	rec, ok := r.records[id]
	if !ok {
		return nil
	}
	return rec.path
}

// Len returns the number of live paths.
func (r *Registry) Len() int {
	n := 0
	for _, rec := range r.records {
		if rec.path != nil {
			n++
		}
	}
	return n
}

// All returns an iterator over the live paths.
func (r *Registry) All() iter.Seq2[PathID, *Path] {
	return func(yield func(PathID, *Path) bool) {
		for id, rec := range r.records {
			if rec.path == nil {
				continue
			}
			if !yield(id, rec.path) {
				return
			}
		}
	}
}

// Update runs one maintenance cycle: it frees the caches of removed paths,
// attaches fresh invalid caches to paths that lack one, and rebuilds every
// cache that is invalid or whose sample count no longer matches its path's
// configuration. Running it again without intervening edits is a no-op.
func (r *Registry) Update() {
	var attached, freed int
	var stale []*record
	for id, rec := range r.records {
		if rec.path == nil {
			if rec.cache != nil {
				rec.cache.Release()
			}
			delete(r.records, id)
			freed++
			continue
		}
		if rec.cache == nil {
			rec.cache = &DistanceCache{}
			attached++
		}
		if rec.stale() {
			stale = append(stale, rec)
		}
	}
	r.rebuild(stale)
	logger().Debug("path cache maintenance",
		"paths", len(r.records), "attached", attached, "freed", freed, "rebuilt", len(stale))
}

// rebuild recomputes the given caches, fanning out across workers when
// configured. Records sharing one path stay on one goroutine: a rebuild
// re-solves its path's tangents, so two of them must not touch the same
// waypoint slice concurrently. Beyond that grouping, each rebuild touches
// only its own path's waypoints and cache, and no synchronization beyond the
// final wait is needed.
func (r *Registry) rebuild(stale []*record) {
	workers := min(r.Workers, len(stale))
	if workers < 2 {
		for _, rec := range stale {
			rec.cache.Recalculate(rec.path)
		}
		return
	}
	groups := make(map[*Path][]*record, len(stale))
	var paths []*Path
	for _, rec := range stale {
		if _, ok := groups[rec.path]; !ok {
			paths = append(paths, rec.path)
		}
		groups[rec.path] = append(groups[rec.path], rec)
	}
	work := make(chan []*record)
	var wg sync.WaitGroup
	for range min(workers, len(paths)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recs := range work {
				for _, rec := range recs {
					rec.cache.Recalculate(rec.path)
				}
			}
		}()
	}
	for _, p := range paths {
		work <- groups[p]
	}
	close(work)
	wg.Wait()
}

// ensure returns id's record with an up-to-date cache, rebuilding at most
// once per invalidation, or nil if id is not a live path.
func (r *Registry) ensure(id PathID) *record {
	rec, ok := r.records[id]
	if !ok || rec.path == nil {
		return nil
	}
	if rec.cache == nil {
		rec.cache = &DistanceCache{}
	}
	if rec.stale() {
		rec.cache.Recalculate(rec.path)
	}
	return rec
}

// Position evaluates the position on path id at v, measured in the given
// unit system. Unknown ids yield the zero vector.
func (r *Registry) Position(id PathID, v float32, u Unit) math32.Vector3 {
	rec := r.ensure(id)
	if rec == nil {
		return math32.Vector3{}
	}
	return rec.path.Position(rec.cache.ToPathUnits(v, u))
}

// Tangent evaluates the curve derivative on path id at v, measured in the
// given unit system. Unknown ids yield the zero vector.
func (r *Registry) Tangent(id PathID, v float32, u Unit) math32.Vector3 {
	rec := r.ensure(id)
	if rec == nil {
		return math32.Vector3{}
	}
	return rec.path.Tangent(rec.cache.ToPathUnits(v, u))
}

// Orientation evaluates the curve orientation on path id at v, measured in
// the given unit system. Unknown ids yield the identity rotation.
func (r *Registry) Orientation(id PathID, v float32, u Unit) math32.Quat {
	rec := r.ensure(id)
	if rec == nil {
		var q math32.Quat
		q.SetIdentity()
		return q
	}
	return rec.path.Orientation(rec.cache.ToPathUnits(v, u))
}

// Convert converts v on path id from one unit system to another. Unknown
// ids yield 0.
func (r *Registry) Convert(id PathID, v float32, from, to Unit) float32 {
	rec := r.ensure(id)
	if rec == nil {
		return 0
	}
	return rec.cache.ConvertUnit(v, from, to)
}

// PathLength returns the total arc length of path id, 0 for unknown ids.
func (r *Registry) PathLength(id PathID) float32 {
	rec := r.ensure(id)
	if rec == nil {
		return 0
	}
	return rec.cache.PathLength()
}
