// Package resolve implements the find-or-create protocol and the
// dependency-ordered resolution of composite entities.
//
// Ensure guarantees that a draft entity exists in the registry and carries
// its identifier on return, creating it at most logically once per run:
// the cache check is the cheap optimistic path, in-process racers collapse
// through singleflight, and an external race (another process created the
// same natural key first) converges through a filtered lookup instead of
// locking.
//
// The Resolver's composer methods order sub-entity resolution so parents
// always resolve before children that embed their identifier: a device
// type's manufacturer resolves first, and a device's type, role, site,
// platform and tags fan out concurrently before the device itself is
// submitted.
package resolve
