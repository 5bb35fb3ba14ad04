package resolve

import (
	"context"
	"testing"

	"inventory-sync/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDeviceType_ManufacturerResolvesFirst(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, _ := newTestResolver(f)

	dt := entity.NewDeviceType(entity.NewManufacturer("Dell Inc."), "Latitude 5440")
	require.NoError(t, r.EnsureDeviceType(context.Background(), dt))

	require.NotZero(t, dt.GetID())
	require.NotZero(t, dt.Manufacturer.GetID())

	// Creation order: parent before the child embedding its identifier.
	require.Len(t, f.creates, 2)
	assert.Equal(t, entity.EndpointManufacturers+"/dell-inc", f.creates[0])
	assert.Equal(t, entity.EndpointDeviceTypes+"/latitude-5440", f.creates[1])
}

func TestEnsureDeviceType_MissingManufacturer(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, _ := newTestResolver(f)

	dt := &entity.DeviceType{Model: "Latitude 5440", Slug: "latitude-5440"}
	err := r.EnsureDeviceType(context.Background(), dt)
	require.ErrorIs(t, err, entity.ErrUnresolvedRef)
}

func TestEnsureDeviceComponents_ResolvesAllBranches(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, _ := newTestResolver(f)

	d := entity.NewDevice("host-1", entity.NewSite("Main Office"))
	d.DeviceType = entity.NewDeviceType(entity.NewManufacturer("Dell Inc."), "Latitude 5440")
	d.Role = entity.NewDeviceRole("Workstation")
	d.Platform = entity.NewPlatform("Windows 11")
	d.AddTag(entity.NewTag("intune", "2196f3"))
	d.AddTag(entity.NewTag("fortigate", "4caf50"))

	require.NoError(t, r.EnsureDeviceComponents(context.Background(), d))

	assert.NotZero(t, d.DeviceType.GetID())
	assert.NotZero(t, d.DeviceType.Manufacturer.GetID())
	assert.NotZero(t, d.Role.GetID())
	assert.NotZero(t, d.Site.GetID())
	assert.NotZero(t, d.Platform.GetID())
	for _, tag := range d.Tags {
		assert.NotZero(t, tag.GetID())
	}

	// With everything resolved the device is postable.
	_, err := d.CreateBody()
	assert.NoError(t, err)
}

func TestEnsureDeviceComponents_PartialDevice(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, _ := newTestResolver(f)

	// Only a site and a tag; absent branches are simply not resolved.
	d := entity.NewDevice("host-2", entity.NewSite("Main Office"))
	d.AddTag(entity.NewTag("nagios", "9c27b0"))

	require.NoError(t, r.EnsureDeviceComponents(context.Background(), d))
	assert.NotZero(t, d.Site.GetID())
	assert.NotZero(t, d.Tags[0].GetID())

	// The device itself is not postable without type and role. That is a
	// data-quality error surfaced at payload time, not a composer failure.
	_, err := d.CreateBody()
	require.ErrorIs(t, err, entity.ErrUnresolvedRef)
}

func TestEnsureDeviceComponents_BranchFailureFailsDevice(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, _ := newTestResolver(f)

	f.rejectCreate[entity.EndpointPlatforms] = true

	d := entity.NewDevice("host-3", entity.NewSite("Main Office"))
	d.Role = entity.NewDeviceRole("Workstation")
	d.Platform = entity.NewPlatform("Windows 11")

	err := r.EnsureDeviceComponents(context.Background(), d)
	require.ErrorIs(t, err, ErrCreateFailed)
	assert.Contains(t, err.Error(), "platform")
}

func TestEnsureContact(t *testing.T) {
	f := newFakeRegistry()
	defer f.close()
	r, c := newTestResolver(f)

	contact := entity.NewContact("Jamie Doe")
	contact.Email = "jamie@example.com"
	require.NoError(t, r.EnsureContact(context.Background(), contact))

	assert.NotZero(t, contact.GetID())
	_, ok := c.Contacts.Get("jamie-doe")
	assert.True(t, ok)
}
