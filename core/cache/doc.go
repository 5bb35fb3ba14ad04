// Package cache provides the run-scoped, concurrency-safe entity cache.
//
// One logical table exists per entity kind, keyed by natural key and
// holding the last known synchronized entity including its
// registry-assigned identifier. The cache is the single source of truth
// preventing duplicate creates within a run: every resolution consults it
// before talking to the registry and writes back after a successful
// create or lookup.
//
// The cache is rebuilt from the registry on every execution; there is no
// eviction and no persistence.
package cache
