// Package cache provides the in-memory caching policies for expensive
// provider computations.
//
// Two policies live here:
//
//   - Daily: one entry per calendar date. Entries keyed earlier than
//     today are pruned opportunistically on every write, never swept
//     eagerly, so the map stays bounded to a handful of live entries
//     by construction.
//
//   - Yearly: a single slot per calendar year. While the requested year
//     matches the cached one the underlying computation is never
//     invoked, which matters because a year recomputation runs tens of
//     discrete evaluations.
//
// Both policies dedupe concurrent fills of the same key through
// singleflight, and neither holds its lock across the compute callback.
//
// The weather snapshot follows a third, dual-field-atomic policy; it
// lives with its provider in pkg/weather because its consistency rule
// (commit both fetches or neither) is inseparable from the fetch logic.
package cache
