package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFanOut_CollectsAllSuccesses(t *testing.T) {
	keys := []string{"a", "b", "c"}
	out := FanOut(context.Background(), keys, func(_ context.Context, k string) (string, bool) {
		return strings.ToUpper(k), true
	})

	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if out["a"] != "A" || out["b"] != "B" || out["c"] != "C" {
		t.Errorf("unexpected result map: %v", out)
	}
}

func TestFanOut_FailedItemsOmittedWithoutAbortingSiblings(t *testing.T) {
	keys := []string{"ok1", "bad", "ok2"}
	out := FanOut(context.Background(), keys, func(_ context.Context, k string) (int, bool) {
		if k == "bad" {
			return 0, false
		}
		return len(k), true
	})

	if _, present := out["bad"]; present {
		t.Error("failed key should be absent from the result map")
	}
	if len(out) != 2 {
		t.Errorf("sibling lookups should still complete, got %v", out)
	}
}

func TestFanOut_DeduplicatesKeys(t *testing.T) {
	var calls atomic.Int32
	keys := []string{"x", "x", "x", "y"}
	out := FanOut(context.Background(), keys, func(_ context.Context, k string) (string, bool) {
		calls.Add(1)
		return k, true
	})

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 lookups for 2 distinct keys, got %d", got)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 entries, got %v", out)
	}
}

func TestFanOut_EmptyKeySet(t *testing.T) {
	out := FanOut(context.Background(), nil, func(_ context.Context, k string) (string, bool) {
		t.Error("lookup must not run for an empty key set")
		return k, true
	})
	if len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}
