// Package providers contains the external info-lookup clients: IP
// geolocation, green-hosting verification, and third-party entity
// identification. Each call resolves one key; failures are reported as
// errors and the caller degrades that item to absent.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ecostack/footprint/models"
)

// maxProviderBody caps how much of a provider response we read.
const maxProviderBody = 1 << 20

// GeoClient looks up IP geolocation (ipinfo-style API, bearer token auth).
type GeoClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewGeoClient creates a geolocation client. Pass nil to use http.DefaultClient.
func NewGeoClient(baseURL, token string, httpClient *http.Client) *GeoClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeoClient{baseURL: baseURL, token: token, httpClient: httpClient}
}

// Lookup fetches the geolocation record for one IP.
func (c *GeoClient) Lookup(ctx context.Context, ip string) (*models.IPInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip, nil)
	if err != nil {
		return nil, fmt.Errorf("geo: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo: %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo: %s: status %d", ip, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("geo: read body: %w", err)
	}

	var rec models.IPInfo
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("geo: decode response: %w", err)
	}
	if rec.IP == "" {
		rec.IP = ip
	}
	return &rec, nil
}
