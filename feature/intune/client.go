package intune

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

// Client talks to the Graph API with a client-credentials token fetched
// at connect time. The token is not refreshed mid-run.
type Client struct {
	http  *http.Client
	url   string
	token string
}

// tokenResponse is the identity platform's token grant response.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ErrorDescription string `json:"error_description"`
}

// page is the Graph pagination envelope.
type page[T any] struct {
	Next  string `json:"@odata.nextLink"`
	Value []T    `json:"value"`
}

// Connect authenticates and returns a ready client.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	httpClient := &http.Client{Timeout: time.Duration(timeout) * time.Second}

	token, err := fetchToken(ctx, httpClient, cfg)
	if err != nil {
		return nil, fmt.Errorf("intune: fetch token: %w", err)
	}

	return &Client{
		http:  httpClient,
		url:   strings.TrimRight(cfg.URL, "/"),
		token: token,
	}, nil
}

// fetchToken performs the client-credentials grant.
func fetchToken(ctx context.Context, httpClient *http.Client, cfg Config) (string, error) {
	form := url.Values{}
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")
	form.Set("grant_type", "client_credentials")

	link := fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(cfg.LoginURL, "/"), cfg.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, link, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var grant tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&grant); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if grant.AccessToken == "" {
		return "", fmt.Errorf("no access token granted: %s", grant.ErrorDescription)
	}
	return grant.AccessToken, nil
}

// FetchDevices pulls every managed device, following pagination.
func (c *Client) FetchDevices(ctx context.Context) ([]DeviceRecord, error) {
	return fetchAll[DeviceRecord](ctx, c, c.url+"/deviceManagement/managedDevices")
}

// FetchUsers pulls every directory user, following pagination.
func (c *Client) FetchUsers(ctx context.Context) ([]UserRecord, error) {
	return fetchAll[UserRecord](ctx, c, c.url+"/users")
}

func fetchAll[T any](ctx context.Context, c *Client, link string) ([]T, error) {
	var items []T
	for link != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return nil, fmt.Errorf("graph returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
		}

		var p page[T]
		err = json.NewDecoder(res.Body).Decode(&p)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}

		items = append(items, p.Value...)
		link = p.Next
	}
	return items, nil
}
