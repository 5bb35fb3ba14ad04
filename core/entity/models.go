package entity

// Registry collection endpoints, relative to the API base URL.
const (
	EndpointManufacturers   = "dcim/manufacturers"
	EndpointDeviceTypes     = "dcim/device-types"
	EndpointDeviceRoles     = "dcim/device-roles"
	EndpointSites           = "dcim/sites"
	EndpointPlatforms       = "dcim/platforms"
	EndpointDevices         = "dcim/devices"
	EndpointTags            = "extras/tags"
	EndpointContacts        = "tenancy/contacts"
	EndpointVirtualMachines = "virtualization/virtual-machines"
	EndpointIPAddresses     = "ipam/ip-addresses"
)

// Manufacturer is a hardware vendor referenced by device types.
type Manufacturer struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewManufacturer builds a manufacturer draft keyed by its slugified name.
func NewManufacturer(name string) *Manufacturer {
	return &Manufacturer{Name: name, Slug: Slugify(name)}
}

func (m *Manufacturer) CacheKey() string        { return m.Slug }
func (m *Manufacturer) Endpoint() string        { return EndpointManufacturers }
func (m *Manufacturer) GetID() int              { return m.ID }
func (m *Manufacturer) SetID(id int)            { m.ID = id }
func (m *Manufacturer) CreateBody() (any, error) { return m, nil }
func (m *Manufacturer) FilterBy() (string, string) { return "slug", m.Slug }

// DeviceType is a hardware model. It embeds its manufacturer's identifier
// in the create payload, so the manufacturer must resolve first.
type DeviceType struct {
	ID           int           `json:"id,omitempty"`
	Manufacturer *Manufacturer `json:"manufacturer"`
	Model        string        `json:"model"`
	Slug         string        `json:"slug"`
}

// NewDeviceType builds a device-type draft keyed by its slugified model.
func NewDeviceType(manufacturer *Manufacturer, model string) *DeviceType {
	return &DeviceType{Manufacturer: manufacturer, Model: model, Slug: Slugify(model)}
}

func (d *DeviceType) CacheKey() string { return d.Slug }
func (d *DeviceType) Endpoint() string { return EndpointDeviceTypes }
func (d *DeviceType) GetID() int       { return d.ID }
func (d *DeviceType) SetID(id int)     { d.ID = id }

// CreateBody flattens the manufacturer reference to its identifier.
func (d *DeviceType) CreateBody() (any, error) {
	if d.Manufacturer == nil || d.Manufacturer.GetID() == 0 {
		return nil, ErrUnresolvedRef
	}
	return struct {
		Manufacturer int    `json:"manufacturer"`
		Model        string `json:"model"`
		Slug         string `json:"slug"`
	}{d.Manufacturer.GetID(), d.Model, d.Slug}, nil
}

func (d *DeviceType) FilterBy() (string, string) { return "slug", d.Slug }

// DeviceRole classifies what a device does (workstation, switch, ...).
type DeviceRole struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewDeviceRole builds a role draft keyed by its slugified name.
func NewDeviceRole(name string) *DeviceRole {
	return &DeviceRole{Name: name, Slug: Slugify(name)}
}

func (r *DeviceRole) CacheKey() string        { return r.Slug }
func (r *DeviceRole) Endpoint() string        { return EndpointDeviceRoles }
func (r *DeviceRole) GetID() int              { return r.ID }
func (r *DeviceRole) SetID(id int)            { r.ID = id }
func (r *DeviceRole) CreateBody() (any, error) { return r, nil }
func (r *DeviceRole) FilterBy() (string, string) { return "slug", r.Slug }

// Site is a physical location devices are assigned to.
type Site struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewSite builds a site draft keyed by its slugified name.
func NewSite(name string) *Site {
	return &Site{Name: name, Slug: Slugify(name)}
}

func (s *Site) CacheKey() string        { return s.Slug }
func (s *Site) Endpoint() string        { return EndpointSites }
func (s *Site) GetID() int              { return s.ID }
func (s *Site) SetID(id int)            { s.ID = id }
func (s *Site) CreateBody() (any, error) { return s, nil }
func (s *Site) FilterBy() (string, string) { return "slug", s.Slug }

// Platform is an operating system or firmware family.
type Platform struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewPlatform builds a platform draft keyed by its slugified name.
func NewPlatform(name string) *Platform {
	return &Platform{Name: name, Slug: Slugify(name)}
}

func (p *Platform) CacheKey() string        { return p.Slug }
func (p *Platform) Endpoint() string        { return EndpointPlatforms }
func (p *Platform) GetID() int              { return p.ID }
func (p *Platform) SetID(id int)            { p.ID = id }
func (p *Platform) CreateBody() (any, error) { return p, nil }
func (p *Platform) FilterBy() (string, string) { return "slug", p.Slug }

// Tag is a free-form label. Sources attach an origin tag to every device
// they report, plus conditional tags such as "reserved".
type Tag struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color,omitempty"`
}

// NewTag builds a tag draft keyed by its slugified name.
func NewTag(name, color string) *Tag {
	return &Tag{Name: name, Slug: Slugify(name), Color: color}
}

func (t *Tag) CacheKey() string        { return t.Slug }
func (t *Tag) Endpoint() string        { return EndpointTags }
func (t *Tag) GetID() int              { return t.ID }
func (t *Tag) SetID(id int)            { t.ID = id }
func (t *Tag) CreateBody() (any, error) { return t, nil }
func (t *Tag) FilterBy() (string, string) { return "slug", t.Slug }

// Contact is a person record, sourced from the endpoint-management
// directory's user list.
type Contact struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Title string `json:"title,omitempty"`
	Group string `json:"group,omitempty"`
}

// NewContact builds a contact draft keyed by its slugified name.
func NewContact(name string) *Contact {
	return &Contact{Name: name}
}

func (c *Contact) CacheKey() string        { return Slugify(c.Name) }
func (c *Contact) Endpoint() string        { return EndpointContacts }
func (c *Contact) GetID() int              { return c.ID }
func (c *Contact) SetID(id int)            { c.ID = id }
func (c *Contact) CreateBody() (any, error) { return c, nil }
func (c *Contact) FilterBy() (string, string) { return "name", c.Name }

// VirtualMachine mirrors the registry's VM records. VMs are preloaded into
// the cache so device resolution never collides with an existing VM name,
// but this system does not create them.
type VirtualMachine struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

func (v *VirtualMachine) CacheKey() string        { return Slugify(v.Name) }
func (v *VirtualMachine) Endpoint() string        { return EndpointVirtualMachines }
func (v *VirtualMachine) GetID() int              { return v.ID }
func (v *VirtualMachine) SetID(id int)            { v.ID = id }
func (v *VirtualMachine) CreateBody() (any, error) { return v, nil }
func (v *VirtualMachine) FilterBy() (string, string) { return "name", v.Name }

// IPAddress is an IPv4 address record, keyed by the address literal.
type IPAddress struct {
	ID      int    `json:"id,omitempty"`
	Address string `json:"address"`
}

func (a *IPAddress) CacheKey() string        { return a.Address }
func (a *IPAddress) Endpoint() string        { return EndpointIPAddresses }
func (a *IPAddress) GetID() int              { return a.ID }
func (a *IPAddress) SetID(id int)            { a.ID = id }
func (a *IPAddress) CreateBody() (any, error) { return a, nil }
func (a *IPAddress) FilterBy() (string, string) { return "address", a.Address }
