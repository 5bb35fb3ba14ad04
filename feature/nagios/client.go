package nagios

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the monitoring source.
type Config struct {
	// Enabled toggles this source for the run.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// URL is the monitoring API base URL.
	URL string `mapstructure:"url" default:""`
	// APIKey authenticates every request via query parameter.
	APIKey string `mapstructure:"api_key" default:""`
	// Site is the registry site devices from this source are assigned to.
	Site string `mapstructure:"site" default:"Main Office"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Client talks to the monitoring REST API.
type Client struct {
	http   *http.Client
	url    string
	apiKey string
}

// hostList is the monitoring API's host status envelope.
type hostList struct {
	RecordCount int          `json:"recordcount"`
	HostStatus  []HostStatus `json:"hoststatus"`
}

// NewClient builds a monitoring API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		url:    strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.APIKey,
	}
}

// FetchHosts lists every monitored host's current status.
func (c *Client) FetchHosts(ctx context.Context) ([]HostStatus, error) {
	link := fmt.Sprintf("%s/objects/hoststatus?apikey=%s", c.url, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("nagios returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded hostList
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode host status: %w", err)
	}
	return decoded.HostStatus, nil
}
