package entity

import "fmt"

// Device is the composite entity the whole run revolves around. A draft is
// created once per canonical device identity during consolidation, mutated
// by each further source record sharing that identity, and submitted to the
// registry exactly once.
type Device struct {
	ID         int         `json:"id,omitempty"`
	Name       string      `json:"name"`
	DeviceType *DeviceType `json:"device_type,omitempty"`
	Role       *DeviceRole `json:"role,omitempty"`
	Site       *Site       `json:"site,omitempty"`
	Platform   *Platform   `json:"platform,omitempty"`
	Status     Status      `json:"status"`
	Serial     string      `json:"serial,omitempty"`
	PrimaryIP4 *IPAddress  `json:"primary_ip4,omitempty"`
	Tags       []*Tag      `json:"tags,omitempty"`
}

// NewDevice builds a device draft. Name and site are fixed at creation and
// not revisited by later merges; everything else starts empty / offline.
func NewDevice(name string, site *Site) *Device {
	return &Device{Name: name, Site: site, Status: StatusOffline()}
}

func (d *Device) CacheKey() string { return Slugify(d.Name) }
func (d *Device) Endpoint() string { return EndpointDevices }
func (d *Device) GetID() int       { return d.ID }
func (d *Device) SetID(id int)     { d.ID = id }

func (d *Device) FilterBy() (string, string) { return "name", d.Name }

// FillSerial sets the serial only if the draft has none. The first source
// to report a field wins; later sources never overwrite it.
func (d *Device) FillSerial(serial string) {
	if d.Serial == "" {
		d.Serial = serial
	}
}

// FillType sets the device type only if the draft has none.
func (d *Device) FillType(dt *DeviceType) {
	if d.DeviceType == nil && dt != nil {
		d.DeviceType = dt
	}
}

// FillRole sets the role only if the draft has none.
func (d *Device) FillRole(r *DeviceRole) {
	if d.Role == nil && r != nil {
		d.Role = r
	}
}

// FillPlatform sets the platform only if the draft has none.
func (d *Device) FillPlatform(p *Platform) {
	if d.Platform == nil && p != nil {
		d.Platform = p
	}
}

// FillPrimaryIP4 sets the primary IPv4 address only if the draft has none.
func (d *Device) FillPrimaryIP4(addr string) {
	if d.PrimaryIP4 == nil && addr != "" {
		d.PrimaryIP4 = &IPAddress{Address: addr}
	}
}

// MarkOnline forces the status to Active. Online is an OR across sources:
// any positive report wins and a later offline report never demotes it.
func (d *Device) MarkOnline() {
	d.Status = StatusActive()
}

// AddTag attaches a tag, deduplicated by slug. Tags on a device form a set.
func (d *Device) AddTag(t *Tag) {
	if t == nil || t.Slug == "" {
		return
	}
	for _, existing := range d.Tags {
		if existing.Slug == t.Slug {
			return
		}
	}
	d.Tags = append(d.Tags, t)
}

// devicePayload is the postable representation: every reference flattened
// to its registry identifier.
type devicePayload struct {
	Name       string `json:"name"`
	DeviceType int    `json:"device_type"`
	Role       int    `json:"role"`
	Site       int    `json:"site"`
	Status     Status `json:"status"`
	Serial     string `json:"serial,omitempty"`
	Platform   int    `json:"platform,omitempty"`
	Tags       []int  `json:"tags,omitempty"`
}

// CreateBody flattens all references to identifiers. It fails with
// ErrUnresolvedRef when any mandatory reference (type, role, site) is
// missing or unresolved, naming the offending field.
func (d *Device) CreateBody() (any, error) {
	if d.DeviceType == nil || d.DeviceType.GetID() == 0 {
		return nil, fmt.Errorf("device %q: device_type: %w", d.Name, ErrUnresolvedRef)
	}
	if d.Role == nil || d.Role.GetID() == 0 {
		return nil, fmt.Errorf("device %q: role: %w", d.Name, ErrUnresolvedRef)
	}
	if d.Site == nil || d.Site.GetID() == 0 {
		return nil, fmt.Errorf("device %q: site: %w", d.Name, ErrUnresolvedRef)
	}

	payload := devicePayload{
		Name:       d.Name,
		DeviceType: d.DeviceType.GetID(),
		Role:       d.Role.GetID(),
		Site:       d.Site.GetID(),
		Status:     d.Status,
		Serial:     d.Serial,
	}
	if d.Platform != nil {
		if d.Platform.GetID() == 0 {
			return nil, fmt.Errorf("device %q: platform: %w", d.Name, ErrUnresolvedRef)
		}
		payload.Platform = d.Platform.GetID()
	}
	for _, t := range d.Tags {
		if t.GetID() == 0 {
			return nil, fmt.Errorf("device %q: tag %q: %w", d.Name, t.Slug, ErrUnresolvedRef)
		}
		payload.Tags = append(payload.Tags, t.GetID())
	}

	return payload, nil
}
