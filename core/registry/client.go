package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is returned when the registry answers with a non-2xx status.
// The body is retained because the registry reports validation problems
// (including "already exists" conflicts) in the response body.
type APIError struct {
	// StatusCode is the HTTP status the registry returned.
	StatusCode int
	// Body is the raw response body.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the registry REST API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a registry client with strict transport timeouts.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		http:    &http.Client{Transport: transport, Timeout: timeoutDuration},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
	}
}

// listResponse is the registry's pagination envelope.
type listResponse[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// List fetches the full collection at endpoint, following next links until
// the registry reports no further page. An optional filter is encoded into
// the first page's query string; subsequent links are followed verbatim.
func List[T any](ctx context.Context, c *Client, endpoint string, filter url.Values) ([]T, error) {
	link := c.baseURL + "/" + strings.Trim(endpoint, "/") + "/"
	if len(filter) > 0 {
		link += "?" + filter.Encode()
	}

	var results []T
	for link != "" {
		page, err := getPage[T](ctx, c, link)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", endpoint, err)
		}
		results = append(results, page.Results...)

		link = ""
		if page.Next != nil && *page.Next != "" {
			link = *page.Next
		}
	}

	return results, nil
}

func getPage[T any](ctx context.Context, c *Client, link string) (*listResponse[T], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var page listResponse[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}

// Create POSTs body to the collection endpoint and decodes the created
// entity from the response.
func Create[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return send[T](ctx, c, http.MethodPost, c.memberURL(endpoint, 0), body)
}

// Update PATCHes body to the member endpoint identified by id.
func Update[T any](ctx context.Context, c *Client, endpoint string, id int, body any) (T, error) {
	return send[T](ctx, c, http.MethodPatch, c.memberURL(endpoint, id), body)
}

func (c *Client) memberURL(endpoint string, id int) string {
	link := c.baseURL + "/" + strings.Trim(endpoint, "/") + "/"
	if id != 0 {
		link += fmt.Sprintf("%d/", id)
	}
	return link
}

func send[T any](ctx context.Context, c *Client, method, link string, body any) (T, error) {
	var zero T

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, link, bytes.NewReader(payload))
	if err != nil {
		return zero, err
	}

	raw, err := c.do(req)
	if err != nil {
		return zero, err
	}

	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

// do executes the request with auth headers and returns the body, or an
// *APIError for non-2xx responses.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return raw, nil
}
