// Package entity defines the registry entity kinds and the capability
// interface the generic resolver operates on.
//
// Every kind carries a natural key (a slug derived from its display name)
// used for caching and deduplication, and a registry-assigned identifier
// that is zero until the entity has been resolved against the registry.
//
// The Model interface is the contract between a kind and the resolver:
// natural-key derivation, collection endpoint, identifier access, and the
// postable create body. Composite kinds (DeviceType, Device) refuse to
// produce a create body while any referenced sub-entity is unresolved.
package entity
