package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeoLookup_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","country":"US","org":"AS15169 Google LLC"}`))
	}))
	defer srv.Close()

	c := NewGeoClient(srv.URL, "sekret", srv.Client())
	info, err := c.Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatal(err)
	}
	if info.City != "Mountain View" || info.Country != "US" {
		t.Errorf("unexpected record: %+v", info)
	}
}

func TestGeoLookup_RateLimitedIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeoClient(srv.URL, "", srv.Client())
	if _, err := c.Lookup(context.Background(), "8.8.8.8"); err == nil {
		t.Error("429 should degrade to absent (error)")
	}
}

func TestGeoLookup_FillsMissingIPField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city":"Berlin","country":"DE"}`))
	}))
	defer srv.Close()

	c := NewGeoClient(srv.URL, "", srv.Client())
	info, err := c.Lookup(context.Background(), "5.5.5.5")
	if err != nil {
		t.Fatal(err)
	}
	if info.IP != "5.5.5.5" {
		t.Errorf("record should carry the queried IP, got %q", info.IP)
	}
}
