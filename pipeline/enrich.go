package pipeline

import (
	"context"

	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/urlutil"
)

// Resolver maps a hostname to an IPv4 address.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) (string, error)
}

// Enrich turns raw captured requests into enriched ones:
//
//  1. Requests with no observed peer IP are dropped entirely — the browser
//     never completed a connection for them, so they stay out of the report.
//  2. The distinct hostnames of the retained requests are resolved
//     concurrently through the resolver; failed resolutions are simply
//     omitted from the hostname→IP map.
//  3. Every retained request becomes an EnrichedRequest whose IPAddress is
//     the map entry for its hostname — never the captured RemoteIPAddress.
//     IPAddress stays empty when the map misses.
//
// Output preserves capture order and has exactly one entry per retained
// input request.
func Enrich(ctx context.Context, captured []models.CapturedRequest, r Resolver) []models.EnrichedRequest {
	retained := make([]models.CapturedRequest, 0, len(captured))
	for _, req := range captured {
		if req.RemoteIPAddress != "" {
			retained = append(retained, req)
		}
	}

	hostnames := make([]string, 0, len(retained))
	seen := make(map[string]struct{}, len(retained))
	for _, req := range retained {
		host := urlutil.Hostname(req.URL)
		if host == "" {
			continue
		}
		if _, dup := seen[host]; !dup {
			seen[host] = struct{}{}
			hostnames = append(hostnames, host)
		}
	}

	hostIPs := FanOut(ctx, hostnames, func(ctx context.Context, host string) (string, bool) {
		ip, err := r.Resolve(ctx, host)
		if err != nil || ip == "" {
			return "", false
		}
		return ip, true
	})

	enriched := make([]models.EnrichedRequest, 0, len(retained))
	for _, req := range retained {
		host := urlutil.Hostname(req.URL)
		enriched = append(enriched, models.EnrichedRequest{
			URL:       req.URL,
			Hostname:  host,
			IPAddress: hostIPs[host],
		})
	}
	return enriched
}
