package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/urlutil"
)

// EntityClient identifies the commercial entity behind a third-party request
// URL. A remote identification API is consulted first when configured; the
// built-in tracker table serves as the fallback either way.
type EntityClient struct {
	baseURL    string // empty: table-only mode
	httpClient *http.Client
}

// NewEntityClient creates an entity-identification client.
// Pass an empty baseURL for table-only mode; pass nil to use http.DefaultClient.
func NewEntityClient(baseURL string, httpClient *http.Client) *EntityClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EntityClient{baseURL: baseURL, httpClient: httpClient}
}

// Identify returns the entity behind rawURL, or an error when neither the
// remote API nor the tracker table knows it (the item degrades to absent).
func (c *EntityClient) Identify(ctx context.Context, rawURL string) (*models.Entity, error) {
	if c.baseURL != "" {
		if ent, err := c.identifyRemote(ctx, rawURL); err == nil {
			return ent, nil
		}
		// Remote miss or failure: the table below still gets a chance.
	}

	host := urlutil.Hostname(rawURL)
	if host == "" {
		return nil, fmt.Errorf("entity: unparseable url %q", rawURL)
	}
	if t, ok := lookupTracker(host); ok {
		return t.toEntity(rawURL), nil
	}
	return nil, fmt.Errorf("entity: no match for %s", host)
}

func (c *EntityClient) identifyRemote(ctx context.Context, rawURL string) (*models.Entity, error) {
	q := url.Values{}
	q.Set("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("entity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entity: %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entity: %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("entity: read body: %w", err)
	}

	var rec models.Entity
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("entity: decode response: %w", err)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("entity: %s: empty record", rawURL)
	}
	rec.URL = rawURL
	return &rec, nil
}
