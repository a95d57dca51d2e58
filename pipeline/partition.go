package pipeline

import (
	"errors"

	"github.com/ecostack/footprint/models"
)

// ErrNoRequests signals that the page loaded but produced zero usable
// network requests. Callers turn this into a degraded (empty) report
// instead of an index-out-of-range fault.
var ErrNoRequests = errors.New("no requests captured")

// Partition is the first-party/third-party split of an enriched request list.
type Partition struct {
	// UniqueIPs holds the distinct resolved IPs in first-seen capture order.
	// Unresolved (empty) addresses are filtered here once, since every
	// downstream lookup would have to skip them anyway.
	UniqueIPs []string

	// HostIP is the resolved IP of the first captured request — the main
	// document — and the first-party reference point. Empty when the first
	// request's resolution failed; the split then treats every distinct
	// resolved IP as third-party.
	HostIP string

	// ThirdParty holds one request per distinct non-host IP. "One per IP"
	// keeps the first occurrence in capture order: two hostnames sharing an
	// IP collapse to whichever loaded first.
	ThirdParty []models.EnrichedRequest
}

// Split partitions enriched requests by resolved IP.
// Returns ErrNoRequests on an empty input.
func Split(enriched []models.EnrichedRequest) (*Partition, error) {
	if len(enriched) == 0 {
		return nil, ErrNoRequests
	}

	p := &Partition{HostIP: enriched[0].IPAddress}

	seen := make(map[string]struct{}, len(enriched))
	for _, req := range enriched {
		if req.IPAddress == "" {
			continue
		}
		if _, dup := seen[req.IPAddress]; dup {
			continue
		}
		seen[req.IPAddress] = struct{}{}
		p.UniqueIPs = append(p.UniqueIPs, req.IPAddress)

		if req.IPAddress != p.HostIP {
			p.ThirdParty = append(p.ThirdParty, req)
		}
	}
	return p, nil
}

// ThirdPartyIPs returns the distinct third-party IP set, host IP excluded by
// construction. This is the set both thirdPartyHosts and verifiedThirdParties
// are counted against.
func (p *Partition) ThirdPartyIPs() []string {
	ips := make([]string, 0, len(p.ThirdParty))
	for _, req := range p.ThirdParty {
		ips = append(ips, req.IPAddress)
	}
	return ips
}

// ThirdPartyURLs returns the request URLs of the third-party partition, the
// key set for entity identification.
func (p *Partition) ThirdPartyURLs() []string {
	urls := make([]string, 0, len(p.ThirdParty))
	for _, req := range p.ThirdParty {
		urls = append(urls, req.URL)
	}
	return urls
}
