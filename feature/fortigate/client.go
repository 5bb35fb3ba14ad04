package fortigate

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client talks to the fabric controller's monitor API.
type Client struct {
	http  *http.Client
	url   string
	token string
}

// queryResponse is the controller's device query envelope.
type queryResponse struct {
	Results []DeviceRecord `json:"results"`
}

// NewClient builds a client, loading the optional custom root
// certificate from cfg.CACertFile.
func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}
	if cfg.CACertFile != "" {
		pem, err := os.ReadFile(cfg.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("fortigate: read ca cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("fortigate: no certificates in %s", cfg.CACertFile)
		}
		tlsConfig.RootCAs = pool
	}

	return &Client{
		http: &http.Client{
			Timeout:   time.Duration(timeout) * time.Second,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
		url:   strings.TrimRight(cfg.URL, "/"),
		token: cfg.Token,
	}, nil
}

// FetchDevices queries every device the fabric currently knows about.
func (c *Client) FetchDevices(ctx context.Context) ([]DeviceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/monitor/user/device/query", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("fortigate returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded queryResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode device query: %w", err)
	}
	return decoded.Results, nil
}
