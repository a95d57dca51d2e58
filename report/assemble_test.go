package report

import (
	"testing"

	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/pipeline"
)

func mustSplit(t *testing.T, enriched []models.EnrichedRequest) *pipeline.Partition {
	t.Helper()
	p, err := pipeline.Split(enriched)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAssemble_SpecScenarioSummary(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://a.com", Hostname: "a.com", IPAddress: "1.1.1.1"},
		{URL: "https://b.com", Hostname: "b.com", IPAddress: "2.2.2.2"},
		{URL: "https://a.com/x", Hostname: "a.com", IPAddress: "1.1.1.1"},
	}
	part := mustSplit(t, enriched)

	rows, summary := Assemble(enriched, part, nil, nil, nil)

	if len(rows) != 3 {
		t.Errorf("rows = %d, want 3", len(rows))
	}
	if summary.TotalRequests != 3 {
		t.Errorf("totalRequests = %d, want 3", summary.TotalRequests)
	}
	if summary.UniqueHosts != 2 {
		t.Errorf("uniqueHosts = %d, want 2", summary.UniqueHosts)
	}
	if summary.ThirdPartyHosts != 1 {
		t.Errorf("thirdPartyHosts = %d, want 1", summary.ThirdPartyHosts)
	}
}

func TestAssemble_JoinsByKeyNotPosition(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://a.com/", Hostname: "a.com", IPAddress: "1.1.1.1"},
		{URL: "https://b.com/t.js", Hostname: "b.com", IPAddress: "2.2.2.2"},
	}
	part := mustSplit(t, enriched)

	geo := map[string]*models.IPInfo{
		"2.2.2.2": {IP: "2.2.2.2", City: "Frankfurt", Country: "DE"},
	}
	green := map[string]*models.GreenCheck{
		"2.2.2.2": {URL: "2.2.2.2", Green: true, HostedBy: "Green Host GmbH"},
	}
	entities := map[string]*models.Entity{
		"https://b.com/t.js": {URL: "https://b.com/t.js", Name: "TrackerCo"},
	}

	rows, _ := Assemble(enriched, part, geo, green, entities)

	if rows[0].IPInfo != nil {
		t.Error("row 0 has no geo record, ipInfo should be absent")
	}
	if rows[1].IPInfo == nil || rows[1].IPInfo.City != "Frankfurt" {
		t.Errorf("row 1 geo join failed: %+v", rows[1].IPInfo)
	}
	if rows[1].GreenCheck != "Green Host GmbH" {
		t.Errorf("greencheck should project hosted_by, got %q", rows[1].GreenCheck)
	}
	if rows[0].ThirdParty != nil {
		t.Error("row 0 should have no entity match")
	}
	if rows[1].ThirdParty == nil || rows[1].ThirdParty.Name != "TrackerCo" {
		t.Errorf("row 1 entity join failed: %+v", rows[1].ThirdParty)
	}
}

func TestAssemble_VerifiedThirdPartiesIgnoresNonThirdPartyGreens(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://a.com/", Hostname: "a.com", IPAddress: "1.1.1.1"},
		{URL: "https://b.com/", Hostname: "b.com", IPAddress: "2.2.2.2"},
	}
	part := mustSplit(t, enriched)

	green := map[string]*models.GreenCheck{
		// Host IP is green, but first-party must never count.
		"1.1.1.1": {URL: "1.1.1.1", Green: true, HostedBy: "First Party Host"},
		// An IP outside the run entirely.
		"5.5.5.5": {URL: "5.5.5.5", Green: true, HostedBy: "Unrelated"},
		// The real third party, not green.
		"2.2.2.2": {URL: "2.2.2.2", Green: false, HostedBy: "Coal Host"},
	}

	_, summary := Assemble(enriched, part, nil, green, nil)

	if summary.VerifiedThirdParties != 0 {
		t.Errorf("verifiedThirdParties = %d, want 0", summary.VerifiedThirdParties)
	}
}

func TestAssemble_VerifiedThirdPartiesCountsGreenThirdParty(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://a.com/", Hostname: "a.com", IPAddress: "1.1.1.1"},
		{URL: "https://b.com/", Hostname: "b.com", IPAddress: "2.2.2.2"},
		{URL: "https://c.com/", Hostname: "c.com", IPAddress: "3.3.3.3"},
	}
	part := mustSplit(t, enriched)

	green := map[string]*models.GreenCheck{
		"2.2.2.2": {URL: "2.2.2.2", Green: true, HostedBy: "Green One"},
		"3.3.3.3": {URL: "3.3.3.3", Green: true, HostedBy: "Green Two"},
	}

	_, summary := Assemble(enriched, part, nil, green, nil)

	if summary.VerifiedThirdParties != 2 {
		t.Errorf("verifiedThirdParties = %d, want 2", summary.VerifiedThirdParties)
	}
}

func TestAssemble_UnresolvedRowSkipsIPKeyedJoins(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://a.com/", Hostname: "a.com", IPAddress: "1.1.1.1"},
		{URL: "https://x.com/", Hostname: "x.com"}, // unresolved
	}
	part := mustSplit(t, enriched)

	// A pathological map entry under the empty key must never be joined.
	geo := map[string]*models.IPInfo{"": {IP: "0.0.0.0"}}

	rows, _ := Assemble(enriched, part, geo, nil, nil)

	if rows[1].IPInfo != nil {
		t.Error("unresolved row must not join IP-keyed records")
	}
}

func TestAssemble_RegistrableDomain(t *testing.T) {
	enriched := []models.EnrichedRequest{
		{URL: "https://cdn.static.example.co.uk/app.js", Hostname: "cdn.static.example.co.uk", IPAddress: "1.1.1.1"},
	}
	part := mustSplit(t, enriched)

	rows, _ := Assemble(enriched, part, nil, nil, nil)

	if rows[0].RegistrableDomain != "example.co.uk" {
		t.Errorf("registrableDomain = %q, want example.co.uk", rows[0].RegistrableDomain)
	}
}
