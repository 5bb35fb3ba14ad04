package consolidate

import (
	"strings"

	"inventory-sync/core/entity"
)

// Record is one source system's view of a device. Each source package
// implements it for its native record type.
type Record interface {
	// Identity returns the canonical cross-source grouping key: the
	// slugified hostname when known, otherwise a stable fallback such as
	// a normalized MAC address. Empty identities are skipped.
	Identity() string

	// Draft builds the initial device draft when this record is the
	// first sighting of its identity.
	Draft() *entity.Device

	// Merge folds this record into a draft created by an earlier record
	// sharing the same identity.
	Merge(d *entity.Device)
}

// Devices folds every source batch into a map of canonical identity to
// device draft. Batches merge in the order given, but the per-field
// policy keeps the outcome order-independent: fill-if-empty and set-union
// fields commute, and status is an OR across sources.
func Devices(batches ...[]Record) map[string]*entity.Device {
	devices := make(map[string]*entity.Device)

	for _, batch := range batches {
		for _, rec := range batch {
			identity := rec.Identity()
			if identity == "" {
				continue
			}
			if draft, ok := devices[identity]; ok {
				rec.Merge(draft)
				continue
			}
			devices[identity] = rec.Draft()
		}
	}

	return devices
}

// NormalizeMAC reduces a hardware address to lowercase hex digits,
// stripping separators, so the same address compares equal regardless of
// the source's formatting.
func NormalizeMAC(mac string) string {
	var b strings.Builder
	b.Grow(len(mac))
	for _, r := range strings.ToLower(mac) {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
