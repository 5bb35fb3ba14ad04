package cache

import (
	"fmt"
	"sync"
	"testing"

	"inventory-sync/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetPut(t *testing.T) {
	store := NewStore[*entity.Manufacturer]()

	_, ok := store.Get("dell-inc")
	assert.False(t, ok)

	first := entity.NewManufacturer("Dell Inc.")
	first.SetID(1)
	store.Put(first.CacheKey(), first)

	got, ok := store.Get("dell-inc")
	require.True(t, ok)
	assert.Equal(t, 1, got.GetID())

	// Overwrite is last-write-wins.
	second := entity.NewManufacturer("Dell Inc.")
	second.SetID(1)
	second.Name = "Dell"
	store.Put(second.CacheKey(), second)

	got, ok = store.Get("dell-inc")
	require.True(t, ok)
	assert.Equal(t, "Dell", got.Name)
	assert.Equal(t, 1, store.Len())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore[*entity.Tag]()

	const writers = 32
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				tag := entity.NewTag(fmt.Sprintf("tag-%d-%d", w, i), "")
				tag.SetID(w*perWriter + i + 1)
				store.Put(tag.CacheKey(), tag)
				store.Get(tag.CacheKey())
			}
		}(w)
	}

	// Concurrent readers over the whole table while writes are in flight.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Range(func(key string, tag *entity.Tag) {
					assert.NotZero(t, tag.GetID())
				})
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, writers*perWriter, store.Len())
}

func TestNew_AllKindsEmpty(t *testing.T) {
	c := New()

	assert.Zero(t, c.Manufacturers.Len())
	assert.Zero(t, c.DeviceTypes.Len())
	assert.Zero(t, c.Roles.Len())
	assert.Zero(t, c.Sites.Len())
	assert.Zero(t, c.Platforms.Len())
	assert.Zero(t, c.Tags.Len())
	assert.Zero(t, c.Contacts.Len())
	assert.Zero(t, c.VirtualMachines.Len())
	assert.Zero(t, c.Devices.Len())
	assert.Zero(t, c.IPAddresses.Len())
}
