package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_FillFields(t *testing.T) {
	d := NewDevice("host-1", NewSite("Main Office"))

	// First writer wins.
	d.FillSerial("SN123")
	d.FillSerial("SN999")
	assert.Equal(t, "SN123", d.Serial)

	role := NewDeviceRole("Workstation")
	d.FillRole(role)
	d.FillRole(NewDeviceRole("Server"))
	assert.Same(t, role, d.Role)

	platform := NewPlatform("Windows 11")
	d.FillPlatform(platform)
	d.FillPlatform(NewPlatform("Linux"))
	assert.Same(t, platform, d.Platform)

	dt := NewDeviceType(NewManufacturer("Dell Inc."), "Latitude 5440")
	d.FillType(dt)
	d.FillType(NewDeviceType(NewManufacturer("HP"), "EliteBook"))
	assert.Same(t, dt, d.DeviceType)
}

func TestDevice_StatusOverride(t *testing.T) {
	d := NewDevice("host-1", NewSite("Main Office"))
	assert.False(t, d.Status.IsActive(), "new drafts start offline")

	d.MarkOnline()
	assert.True(t, d.Status.IsActive())

	// An offline report from another source never demotes an active device,
	// so "merge offline" is simply not calling MarkOnline.
	d.MarkOnline()
	assert.True(t, d.Status.IsActive())
}

func TestDevice_AddTagDeduplicates(t *testing.T) {
	d := NewDevice("host-1", NewSite("Main Office"))

	d.AddTag(NewTag("intune", "2196f3"))
	d.AddTag(NewTag("Intune", "ff0000")) // same slug, different casing
	d.AddTag(NewTag("fortigate", "4caf50"))
	d.AddTag(nil)
	d.AddTag(NewTag("", ""))

	require.Len(t, d.Tags, 2)
	assert.Equal(t, "intune", d.Tags[0].Slug)
	assert.Equal(t, "fortigate", d.Tags[1].Slug)
}

func TestDevice_CreateBody_UnresolvedRefs(t *testing.T) {
	site := NewSite("Main Office")
	site.SetID(3)
	role := NewDeviceRole("Workstation")
	role.SetID(2)
	manufacturer := NewManufacturer("Dell Inc.")
	manufacturer.SetID(5)
	dt := NewDeviceType(manufacturer, "Latitude 5440")

	tests := []struct {
		name    string
		mutate  func(d *Device)
		wantErr bool
	}{
		{
			name:    "missing device type",
			mutate:  func(d *Device) { d.DeviceType = nil },
			wantErr: true,
		},
		{
			name:    "unresolved device type",
			mutate:  func(d *Device) { d.DeviceType.ID = 0 },
			wantErr: true,
		},
		{
			name:    "unresolved site",
			mutate:  func(d *Device) { d.Site.ID = 0 },
			wantErr: true,
		},
		{
			name:    "unresolved tag",
			mutate:  func(d *Device) { d.AddTag(NewTag("intune", "")) },
			wantErr: true,
		},
		{
			name:    "fully resolved",
			mutate:  func(d *Device) {},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDevice("host-1", &Site{ID: site.ID, Name: site.Name, Slug: site.Slug})
			d.Role = &DeviceRole{ID: role.ID, Name: role.Name, Slug: role.Slug}
			d.DeviceType = &DeviceType{ID: 7, Manufacturer: manufacturer, Model: dt.Model, Slug: dt.Slug}
			tt.mutate(d)

			body, err := d.CreateBody()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnresolvedRef)
				return
			}
			require.NoError(t, err)

			payload, ok := body.(devicePayload)
			require.True(t, ok)
			assert.Equal(t, "host-1", payload.Name)
			assert.Equal(t, 7, payload.DeviceType)
			assert.Equal(t, 2, payload.Role)
			assert.Equal(t, 3, payload.Site)
		})
	}
}

func TestDeviceType_CreateBody_EmbedsManufacturerID(t *testing.T) {
	m := NewManufacturer("Dell Inc.")
	dt := NewDeviceType(m, "Latitude 5440")

	_, err := dt.CreateBody()
	require.ErrorIs(t, err, ErrUnresolvedRef, "manufacturer must resolve before its device type")

	m.SetID(5)
	body, err := dt.CreateBody()
	require.NoError(t, err)
	assert.Contains(t, mustJSON(t, body), `"manufacturer":5`)
}
