// Package consolidate folds records describing the same physical device,
// arriving from different source systems, into one canonical device draft
// per identity.
//
// Grouping uses the canonical device identity: the slugified hostname when
// a source knows one, otherwise a source-specific stable fallback such as
// a normalized hardware address. The first record for an identity creates
// the draft; every later record merges into it under the per-field policy
// implemented by the entity.Device helpers (fill-if-empty for serial,
// platform, role and type; any-positive-wins for status; slug-deduplicated
// set union for tags).
package consolidate
