package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ecostack/footprint/models"
)

// fixedResolver resolves hostnames from a static map; unknown hostnames fail.
type fixedResolver struct {
	ips map[string]string
}

func (r *fixedResolver) Resolve(_ context.Context, hostname string) (string, error) {
	if ip, ok := r.ips[hostname]; ok {
		return ip, nil
	}
	return "", errors.New("no such host")
}

func TestEnrich_UsesResolvedIPNotRemoteAddress(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
	}
	r := &fixedResolver{ips: map[string]string{"a.com": "1.1.1.1"}}

	enriched := Enrich(context.Background(), captured, r)

	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched request, got %d", len(enriched))
	}
	if enriched[0].IPAddress != "1.1.1.1" {
		t.Errorf("ipAddress should come from resolution, got %q", enriched[0].IPAddress)
	}
}

func TestEnrich_DropsRequestsWithoutObservedIP(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://blocked.com/"}, // never connected
		{URL: "https://b.com/", RemoteIPAddress: "8.8.8.8"},
	}
	r := &fixedResolver{ips: map[string]string{"a.com": "1.1.1.1", "b.com": "2.2.2.2"}}

	enriched := Enrich(context.Background(), captured, r)

	if len(enriched) != 2 {
		t.Fatalf("expected 2 enriched requests, got %d", len(enriched))
	}
	for _, e := range enriched {
		if e.Hostname == "blocked.com" {
			t.Error("request without observed IP should have been dropped")
		}
	}
}

func TestEnrich_PreservesCaptureOrder(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://b.com/", RemoteIPAddress: "8.8.8.8"},
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://a.com/x", RemoteIPAddress: "9.9.9.9"},
	}
	r := &fixedResolver{ips: map[string]string{"a.com": "1.1.1.1", "b.com": "2.2.2.2"}}

	enriched := Enrich(context.Background(), captured, r)

	wantURLs := []string{"https://b.com/", "https://a.com/", "https://a.com/x"}
	for i, e := range enriched {
		if e.URL != wantURLs[i] {
			t.Errorf("position %d: got %q, want %q", i, e.URL, wantURLs[i])
		}
	}
}

func TestEnrich_ResolutionFailureLeavesIPAbsent(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://unresolvable.com/", RemoteIPAddress: "7.7.7.7"},
	}
	r := &fixedResolver{ips: map[string]string{"a.com": "1.1.1.1"}}

	enriched := Enrich(context.Background(), captured, r)

	if len(enriched) != 2 {
		t.Fatalf("resolution failure must not drop the request: got %d entries", len(enriched))
	}
	if enriched[1].IPAddress != "" {
		t.Errorf("failed resolution should leave ipAddress empty, got %q", enriched[1].IPAddress)
	}
}

func TestEnrich_SharedHostnameResolvedOnce(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://a.com/x", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://a.com/y", RemoteIPAddress: "9.9.9.9"},
	}
	calls := 0
	r := &countingResolver{ip: "1.1.1.1", calls: &calls}

	enriched := Enrich(context.Background(), captured, r)

	if calls != 1 {
		t.Errorf("expected 1 resolver call for a shared hostname, got %d", calls)
	}
	for _, e := range enriched {
		if e.IPAddress != "1.1.1.1" {
			t.Errorf("all requests sharing a hostname should share the resolved IP, got %q", e.IPAddress)
		}
	}
}

type countingResolver struct {
	ip    string
	calls *int
}

func (r *countingResolver) Resolve(_ context.Context, _ string) (string, error) {
	*r.calls++
	return r.ip, nil
}

func TestEnrich_Idempotent(t *testing.T) {
	captured := []models.CapturedRequest{
		{URL: "https://a.com/", RemoteIPAddress: "9.9.9.9"},
		{URL: "https://b.com/", RemoteIPAddress: "8.8.8.8"},
	}
	r := &fixedResolver{ips: map[string]string{"a.com": "1.1.1.1", "b.com": "2.2.2.2"}}

	first := Enrich(context.Background(), captured, r)
	second := Enrich(context.Background(), captured, r)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical input diverged:\n%v\n%v", first, second)
	}
}
