// Package report joins aggregator results back onto enriched requests and
// computes the run summary.
package report

import (
	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/pipeline"
	"github.com/ecostack/footprint/urlutil"
)

// Assemble produces one ReportRow per enriched request (capture order) and
// the Summary for the run.
//
// All joins are key-indexed map lookups: geo and green are keyed by resolved
// IP, entities by request URL. The aggregators build each map with
// first-occurrence-wins semantics, which makes the "first match" tie-break
// explicit rather than an accident of array scan order. A row whose key
// misses a map keeps that field absent.
func Assemble(
	enriched []models.EnrichedRequest,
	part *pipeline.Partition,
	geo map[string]*models.IPInfo,
	green map[string]*models.GreenCheck,
	entities map[string]*models.Entity,
) ([]models.ReportRow, models.Summary) {
	rows := make([]models.ReportRow, 0, len(enriched))
	for _, req := range enriched {
		row := models.ReportRow{
			URL:               req.URL,
			Hostname:          req.Hostname,
			RegistrableDomain: urlutil.RegistrableDomain(req.Hostname),
			IPAddress:         req.IPAddress,
		}
		if req.IPAddress != "" {
			row.IPInfo = geo[req.IPAddress]
			if gc := green[req.IPAddress]; gc != nil {
				row.GreenCheck = gc.HostedBy
			}
		}
		row.ThirdParty = entities[req.URL]
		rows = append(rows, row)
	}

	summary := models.Summary{
		TotalRequests: len(enriched),
		UniqueHosts:   len(part.UniqueIPs),
	}

	// thirdPartyHosts counts distinct third-party IPs, host IP excluded by
	// the partition. verifiedThirdParties only counts green results whose IP
	// is in that same set — a green record for a first-party or unknown IP
	// never inflates the count.
	tpIPs := part.ThirdPartyIPs()
	summary.ThirdPartyHosts = len(tpIPs)
	for _, ip := range tpIPs {
		if gc := green[ip]; gc != nil && gc.Green {
			summary.VerifiedThirdParties++
		}
	}

	return rows, summary
}
