package pipeline

import (
	"context"
	"sync"
)

// LookupFunc resolves one key to a value. Returning ok=false marks the key
// absent (failed or unmatched); absent keys are left out of the result map.
type LookupFunc[K comparable, V any] func(ctx context.Context, key K) (V, bool)

// FanOut issues one concurrent lookup per distinct key and collects the
// results into a key→value map. A per-item failure never aborts the sibling
// lookups, and FanOut returns only when every lookup has completed, so no
// stage ever proceeds with partial results.
//
// Completion order is not the issue order; consumers must join results back
// by key, never by position.
func FanOut[K comparable, V any](ctx context.Context, keys []K, fn LookupFunc[K, V]) map[K]V {
	out := make(map[K]V, len(keys))
	var mu sync.Mutex
	var wg sync.WaitGroup

	seen := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		wg.Add(1)
		go func(k K) {
			defer wg.Done()
			v, ok := fn(ctx, k)
			if !ok {
				return
			}
			mu.Lock()
			out[k] = v
			mu.Unlock()
		}(key)
	}

	wg.Wait()
	return out
}
