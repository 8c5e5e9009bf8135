package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/ports"
)

func TestMemoryCacheHitWithinTTL(t *testing.T) {
	c := NewMemoryGeocodeCache(time.Hour)
	ctx := context.Background()

	loc := ports.CachedLocation{
		Coordinate: domain.Coordinate{Lat: 40.7580, Lon: -73.9855},
		Label:      "Times Square",
	}
	if err := c.Put(ctx, "times square", loc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "times square")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got != loc {
		t.Errorf("got %v, want %v", got, loc)
	}
}

func TestMemoryCacheMissAfterTTL(t *testing.T) {
	c := NewMemoryGeocodeCache(time.Hour)
	ctx := context.Background()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	if err := c.Put(ctx, "union square", ports.CachedLocation{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	clock = clock.Add(59 * time.Minute)
	if _, ok, _ := c.Get(ctx, "union square"); !ok {
		t.Fatal("expected hit before expiry")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "union square"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestMemoryCacheUnknownKey(t *testing.T) {
	c := NewMemoryGeocodeCache(time.Hour)

	_, ok, err := c.Get(context.Background(), "never seen")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryGeocodeCache(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("address %d", i)
			loc := ports.CachedLocation{Coordinate: domain.Coordinate{Lat: float64(i)}}

			if err := c.Put(ctx, key, loc); err != nil {
				t.Errorf("put %q: %v", key, err)
				return
			}

			// A writer must observe its own insert.
			got, ok, err := c.Get(ctx, key)
			if err != nil || !ok {
				t.Errorf("read-after-write miss for %q (ok=%v err=%v)", key, ok, err)
				return
			}
			if got.Coordinate.Lat != float64(i) {
				t.Errorf("key %q got lat %f", key, got.Coordinate.Lat)
			}
		}(i)
	}
	wg.Wait()
}
