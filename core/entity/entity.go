package entity

import (
	"errors"
	"strings"
)

// ErrUnresolvedRef is returned when a composite entity is asked for its
// postable body while one of its referenced sub-entities still has no
// registry identifier. It signals a sequencing or data-quality bug, not a
// transport failure.
var ErrUnresolvedRef = errors.New("referenced entity is not resolved")

// Model is the capability interface every registry entity kind implements.
// The resolver is generic over it, which keeps the find-or-create protocol
// in one place instead of duplicated per kind.
type Model interface {
	// CacheKey returns the natural key used for cache lookup and
	// deduplication. Empty means the entity carries no usable key.
	CacheKey() string

	// Endpoint returns the registry collection path for this kind,
	// e.g. "dcim/manufacturers".
	Endpoint() string

	// GetID returns the registry-assigned identifier, or zero when the
	// entity has not been resolved yet.
	GetID() int

	// SetID records the registry-assigned identifier on the entity.
	SetID(id int)

	// CreateBody returns the representation to POST when creating this
	// entity. Composite kinds return ErrUnresolvedRef if a referenced
	// sub-entity has no identifier yet.
	CreateBody() (any, error)

	// FilterBy returns the registry query parameter and value that select
	// this entity by natural key, used for the resolver's fallback lookup.
	FilterBy() (field, value string)
}

// Status is the registry's operational status representation.
type Status struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewStatus builds a Status from a human label ("Active" -> value "active").
func NewStatus(label string) Status {
	return Status{Value: strings.ToLower(label), Label: label}
}

// StatusActive marks a device that at least one source reports online.
func StatusActive() Status { return NewStatus("Active") }

// StatusOffline marks a device no source reports online.
func StatusOffline() Status { return NewStatus("Offline") }

// IsActive reports whether the status carries the active value.
func (s Status) IsActive() bool { return s.Value == "active" }
