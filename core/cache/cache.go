package cache

import (
	"sync"

	"inventory-sync/core/entity"
)

// Store is one logical cache table for a single entity kind, keyed by
// natural key. It is safe for unbounded concurrent readers and writers.
// A Put for an existing key overwrites: writes only happen after a
// successful registry create or lookup, so colliding writes carry
// equivalent data and last-write-wins is benign.
type Store[T entity.Model] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewStore creates an empty store.
func NewStore[T entity.Model]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Get returns the cached entity for key, if any.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	return item, ok
}

// Put stores the entity under key, overwriting any previous entry.
func (s *Store[T]) Put(key string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = item
}

// Len returns the number of cached entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Range calls fn for every cached entry. fn must not call back into the
// store. Iteration order is unspecified.
func (s *Store[T]) Range(fn func(key string, item T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key, item := range s.items {
		fn(key, item)
	}
}

// Cache aggregates one store per entity kind for a single run.
type Cache struct {
	Manufacturers   *Store[*entity.Manufacturer]
	DeviceTypes     *Store[*entity.DeviceType]
	Roles           *Store[*entity.DeviceRole]
	Sites           *Store[*entity.Site]
	Platforms       *Store[*entity.Platform]
	Tags            *Store[*entity.Tag]
	Contacts        *Store[*entity.Contact]
	VirtualMachines *Store[*entity.VirtualMachine]
	Devices         *Store[*entity.Device]
	IPAddresses     *Store[*entity.IPAddress]
}

// New creates an empty cache covering every entity kind.
func New() *Cache {
	return &Cache{
		Manufacturers:   NewStore[*entity.Manufacturer](),
		DeviceTypes:     NewStore[*entity.DeviceType](),
		Roles:           NewStore[*entity.DeviceRole](),
		Sites:           NewStore[*entity.Site](),
		Platforms:       NewStore[*entity.Platform](),
		Tags:            NewStore[*entity.Tag](),
		Contacts:        NewStore[*entity.Contact](),
		VirtualMachines: NewStore[*entity.VirtualMachine](),
		Devices:         NewStore[*entity.Device](),
		IPAddresses:     NewStore[*entity.IPAddress](),
	}
}
