// Package resolver looks up hostnames through a DNS-over-HTTPS JSON API
// (Google resolve wire shape).
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// dnsTypeA is the record type for IPv4 answers.
const dnsTypeA = 1

// Client resolves hostnames to IPv4 addresses over DoH.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a DoH resolver client. Pass nil to use http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// dohResponse is the minimal resolve-API response we need.
type dohResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Name string `json:"name"`
		Type int    `json:"type"`
		Data string `json:"data"`
	} `json:"Answer"`
}

// Resolve returns the first A record for hostname.
// CNAME chains appear as extra answer entries and are skipped; an answer set
// without a parseable IPv4 address is a resolution failure.
func (c *Client) Resolve(ctx context.Context, hostname string) (string, error) {
	q := url.Values{}
	q.Set("name", hostname)
	q.Set("type", "A")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("resolver: build request: %w", err)
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolver: %s: %w", hostname, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolver: %s: status %d", hostname, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("resolver: read body: %w", err)
	}

	var parsed dohResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("resolver: decode response: %w", err)
	}
	if parsed.Status != 0 {
		return "", fmt.Errorf("resolver: %s: dns status %d", hostname, parsed.Status)
	}

	for _, ans := range parsed.Answer {
		if ans.Type != dnsTypeA {
			continue
		}
		if ip := net.ParseIP(ans.Data); ip != nil && ip.To4() != nil {
			return ans.Data, nil
		}
	}
	return "", fmt.Errorf("resolver: %s: no A record", hostname)
}
