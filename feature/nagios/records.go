package nagios

import (
	"context"

	"inventory-sync/core/consolidate"
	"inventory-sync/core/entity"
)

// SourceName identifies this collaborator in logs, reports and the
// origin tag attached to every device it contributes.
const SourceName = "nagios"

// stateUp is the monitoring system's numeric "host up" state.
const stateUp = "0"

// HostStatus is one monitored host as the API reports it.
type HostStatus struct {
	HostName     string `json:"host_name"`
	DisplayName  string `json:"display_name"`
	Address      string `json:"address"`
	CurrentState string `json:"current_state"`
	LastCheck    string `json:"last_check"`
	Output       string `json:"output"`
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

// Fetch lists the monitored hosts and wraps them as merge contributions.
func (s *Source) Fetch(ctx context.Context) ([]consolidate.Record, error) {
	hosts, err := s.client.FetchHosts(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]consolidate.Record, 0, len(hosts))
	for _, h := range hosts {
		records = append(records, record{host: h, source: s})
	}
	return records, nil
}

// record is one host contribution.
type record struct {
	host   HostStatus
	source *Source
}

func (r record) Identity() string {
	return entity.Slugify(r.host.HostName)
}

func (r record) Draft() *entity.Device {
	d := entity.NewDevice(r.Identity(), entity.NewSite(r.source.site))
	r.Merge(d)
	return d
}

// Merge contributes liveness and the host's address. The monitoring
// system knows nothing about hardware, so fill fields stay untouched.
func (r record) Merge(d *entity.Device) {
	if r.host.CurrentState == stateUp {
		d.MarkOnline()
	}
	d.FillPrimaryIP4(r.host.Address)
	d.AddTag(entity.NewTag(SourceName, "9c27b0"))
}
