package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan string, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "same-key", load)
			if err != nil {
				results <- "error: " + err.Error()
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "value" {
			t.Fatalf("unexpected result %q", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, err := store.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("got %d, %v", got, err)
	}
	if got, ok := store.Get("k"); !ok || got != 7 {
		t.Fatalf("expected cached value 7, got %d ok=%v", got, ok)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock[string](time.Minute, func() time.Time { return now })

	store.Set("club:1", "Arsenal")
	if _, ok := store.Get("club:1"); !ok {
		t.Fatalf("expected fresh entry to be cached")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get("club:1"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped")
	}
}

func TestStore_PurgeDiscardsInFlightLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	ctx := context.Background()
	store.Set("a", "1")

	got, err := store.GetOrLoad(ctx, "b", func(context.Context) (string, error) {
		store.Purge()
		return "stale", nil
	})
	if err != nil || got != "stale" {
		t.Fatalf("got %q, %v", got, err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected purge to win over the in-flight load, len=%d", store.Len())
	}
}
