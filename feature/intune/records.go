package intune

import (
	"context"
	"time"

	"inventory-sync/core/consolidate"
	"inventory-sync/core/entity"
)

// SourceName identifies this collaborator in logs, reports and the
// origin tag attached to every device it contributes.
const SourceName = "intune"

// DeviceRecord is one managed device as the Graph API reports it.
type DeviceRecord struct {
	Name         string `json:"deviceName"`
	Enrolled     string `json:"enrolledDateTime"`
	Synced       string `json:"lastSyncDateTime"`
	OS           string `json:"operatingSystem"`
	OSVersion    string `json:"osVersion"`
	UserEmail    string `json:"emailAddress"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serialNumber"`
	WifiMAC      string `json:"wiFiMacAddress"`
}

// UserRecord is one directory user as the Graph API reports it.
type UserRecord struct {
	Name  string `json:"displayName"`
	Mail  string `json:"mail"`
	Title string `json:"jobTitle"`
}

// Contact converts a directory user into a contact draft.
func (u UserRecord) Contact() *entity.Contact {
	c := entity.NewContact(u.Name)
	c.Email = u.Mail
	c.Title = u.Title
	return c
}

// Source adapts the client into a pipeline source.
type Source struct {
	client     *Client
	site       string
	role       string
	staleAfter time.Duration
}

// NewSource wraps a connected client with the source's site and role
// assignment from configuration.
func NewSource(client *Client, cfg Config) *Source {
	staleDays := cfg.StaleAfterDays
	if staleDays <= 0 {
		staleDays = 7
	}
	return &Source{
		client:     client,
		site:       cfg.Site,
		role:       cfg.Role,
		staleAfter: time.Duration(staleDays) * 24 * time.Hour,
	}
}

func (s *Source) Name() string { return SourceName }

// Fetch pulls all managed devices and wraps them as merge contributions.
func (s *Source) Fetch(ctx context.Context) ([]consolidate.Record, error) {
	devices, err := s.client.FetchDevices(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]consolidate.Record, 0, len(devices))
	for _, d := range devices {
		records = append(records, record{device: d, source: s})
	}
	return records, nil
}

// record is one device contribution.
type record struct {
	device DeviceRecord
	source *Source
}

// Identity prefers the slugified device name; a device without a usable
// name falls back to its normalized wifi MAC.
func (r record) Identity() string {
	if key := entity.Slugify(r.device.Name); key != "" {
		return key
	}
	return consolidate.NormalizeMAC(r.device.WifiMAC)
}

func (r record) Draft() *entity.Device {
	d := entity.NewDevice(r.Identity(), entity.NewSite(r.source.site))
	r.Merge(d)
	return d
}

// Merge applies this record under the cross-source merge policy: serial,
// type, platform and role fill only when empty; a recent sync marks the
// device online; the origin tag joins the tag set.
func (r record) Merge(d *entity.Device) {
	d.FillSerial(r.device.Serial)
	if r.device.Manufacturer != "" && r.device.Model != "" {
		d.FillType(entity.NewDeviceType(entity.NewManufacturer(r.device.Manufacturer), r.device.Model))
	}
	if r.device.OS != "" {
		d.FillPlatform(entity.NewPlatform(r.device.OS))
	}
	d.FillRole(entity.NewDeviceRole(r.source.role))

	if r.syncedWithin(r.source.staleAfter) {
		d.MarkOnline()
	}

	d.AddTag(entity.NewTag(SourceName, "2196f3"))
}

// syncedWithin reports whether the device checked in within the window.
// Unparseable timestamps count as stale.
func (r record) syncedWithin(window time.Duration) bool {
	synced, err := time.Parse(time.RFC3339, r.device.Synced)
	if err != nil {
		return false
	}
	return time.Since(synced) <= window
}
