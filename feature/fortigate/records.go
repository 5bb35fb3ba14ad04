package fortigate

import (
	"context"

	"inventory-sync/core/consolidate"
	"inventory-sync/core/entity"
)

// SourceName identifies this collaborator in logs, reports and the
// origin tag attached to every device it contributes.
const SourceName = "fortigate"

// DeviceRecord is one detected device as the controller reports it.
type DeviceRecord struct {
	MAC          string `json:"mac"`
	IsOnline     bool   `json:"is_online"`
	Hostname     string `json:"hostname"`
	IPv4Address  string `json:"ipv4_address"`
	Vendor       string `json:"hardware_vendor"`
	OSName       string `json:"os_name"`
	OSVersion    string `json:"os_version"`
	DeviceType   string `json:"device_type"`
	LastSeen     int64  `json:"last_seen"`
	DHCPReserved bool   `json:"dhcp_lease_reserved"`
}

// Source adapts the client into a pipeline source.
type Source struct {
	client *Client
	site   string
}

// NewSource wraps a client with the source's site assignment.
func NewSource(client *Client, cfg Config) *Source {
	return &Source{client: client, site: cfg.Site}
}

func (s *Source) Name() string { return SourceName }

// Fetch queries the fabric and wraps every device as a merge
// contribution.
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

// Identity prefers the slugified hostname; the fabric often only knows a
// MAC, which then serves as the stable fallback identity.
func (r record) Identity() string {
	if key := entity.Slugify(r.device.Hostname); key != "" {
		return key
	}
	return consolidate.NormalizeMAC(r.device.MAC)
}

func (r record) Draft() *entity.Device {
	d := entity.NewDevice(r.Identity(), entity.NewSite(r.source.site))
	r.Merge(d)
	return d
}

// Merge applies this record under the cross-source merge policy. The
// fabric knows nothing about hardware models or serials, so it mostly
// contributes liveness, addressing and classification.
func (r record) Merge(d *entity.Device) {
	if r.device.IsOnline {
		d.MarkOnline()
	}
	if r.device.OSName != "" {
		d.FillPlatform(entity.NewPlatform(r.device.OSName))
	}
	if r.device.DeviceType != "" {
		d.FillRole(entity.NewDeviceRole(r.device.DeviceType))
	}
	d.FillPrimaryIP4(r.device.IPv4Address)

	d.AddTag(entity.NewTag(SourceName, "4caf50"))
	if r.device.DHCPReserved {
		d.AddTag(entity.NewTag("reserved", "ff9800"))
	}
}
