// Package track maintains smooth 3D waypoint paths and answers position,
// tangent, and orientation queries along them in several interchangeable
// units of measurement.
//
// # Paths
//
// A [Path] is an ordered sequence of [Waypoint] values. Each waypoint carries
// a position, a roll angle, and a pair of bezier handle offsets. The handles
// are derived, not authored: [Path.SmoothTangents] overwrites them with
// Catmull-Rom style offsets so that the piecewise cubic bezier through the
// waypoints is C1-continuous, including across the seam of a looped path.
//
// Positions along a path are addressed in path units, where 0 is the first
// waypoint, 1 the second, and fractional values interpolate the bezier
// segment in between. [Path.Position], [Path.Tangent], and [Path.Orientation]
// evaluate the curve at such a position. They are pure and re-entrant.
//
// # Units and the distance cache
//
// Consumers usually want to move along a path at constant speed, which calls
// for real arc-length distance rather than path units. Converting between the
// two requires numerically integrating the curve, which is far too expensive
// to repeat per query. [DistanceCache] samples the curve once and stores a
// lookup table mapping curve parameter to cumulative arc length and back;
// [Unit] names the three unit systems ([PathUnit], [DistanceUnit],
// [NormalizedUnit]) and the cache converts any value between them.
//
// The cache is rebuilt only when it is invalid or when the path's sample
// count changed, never per query.
//
// # Registry
//
// [Registry] owns the caches for a dynamic population of paths, keyed by
// [PathID]. [Registry.Update] runs once per host update cycle: it attaches
// caches to new paths, frees caches of removed paths, and rebuilds stale
// ones, optionally fanning the rebuilds out across worker goroutines. The
// read-side query methods must not run concurrently with Update; the host is
// expected to place a barrier between its maintenance phase and its read
// phase, which is the only synchronization this package requires.
package track
