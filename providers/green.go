package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ecostack/footprint/models"
)

// GreenClient checks green-hosting status against a Green Web Foundation
// style greencheck registry.
type GreenClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGreenClient creates a green-hosting client. Pass nil to use http.DefaultClient.
func NewGreenClient(baseURL string, httpClient *http.Client) *GreenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GreenClient{baseURL: baseURL, httpClient: httpClient}
}

// Check fetches the green-hosting record for one IP.
// The registry answers non-2xx or a non-JSON error payload when it has no
// match; both are normalized to a plain error so the item degrades to absent.
func (c *GreenClient) Check(ctx context.Context, ip string) (*models.GreenCheck, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip, nil)
	if err != nil {
		return nil, fmt.Errorf("greencheck: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greencheck: %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("greencheck: %s: status %d", ip, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		return nil, fmt.Errorf("greencheck: %s: unexpected content-type %s", ip, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("greencheck: read body: %w", err)
	}

	var rec models.GreenCheck
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("greencheck: decode response: %w", err)
	}
	if rec.URL == "" {
		rec.URL = ip
	}
	return &rec, nil
}
