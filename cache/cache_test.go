package cache

import (
	"testing"
	"time"

	"github.com/ecostack/footprint/models"
)

func TestCache_HitWithinTTL(t *testing.T) {
	c := New(10, time.Minute)
	key := Key("https://example.com/")

	c.Set(key, &models.AnalyzeResponse{AnalysisID: "abc"})

	got, hit := c.Get(key)
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.AnalysisID != "abc" {
		t.Errorf("wrong entry returned: %+v", got)
	}
}

func TestCache_MissForUnknownKey(t *testing.T) {
	c := New(10, time.Minute)
	if _, hit := c.Get(Key("https://other.example/")); hit {
		t.Error("expected miss for unknown key")
	}
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New(10, 0)
	key := Key("https://example.com/")

	c.Set(key, &models.AnalyzeResponse{})
	if _, hit := c.Get(key); hit {
		t.Error("zero TTL must disable the cache")
	}
}

func TestCache_ExpiredEntryMisses(t *testing.T) {
	c := New(10, 10*time.Millisecond)
	key := Key("https://example.com/")

	c.Set(key, &models.AnalyzeResponse{})
	time.Sleep(20 * time.Millisecond)

	if _, hit := c.Get(key); hit {
		t.Error("expired entry should miss")
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c := New(2, time.Minute)
	c.Set(Key("a"), &models.AnalyzeResponse{})
	c.Set(Key("b"), &models.AnalyzeResponse{})
	c.Set(Key("c"), &models.AnalyzeResponse{})

	c.mu.RLock()
	size := len(c.store)
	c.mu.RUnlock()

	if size > 2 {
		t.Errorf("store size = %d, want <= 2", size)
	}
}

func TestKey_DistinctURLsDistinctKeys(t *testing.T) {
	if Key("https://a.com/") == Key("https://b.com/") {
		t.Error("different URLs must not collide")
	}
}
