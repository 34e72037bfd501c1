package keyset

import (
	"context"
	"errors"
	"testing"
	"time"

	"reportgate/internal/platform/testkit"
)

func fixedFetcher(set Set, err error, calls *int) Fetcher {
	return func(context.Context) (Set, error) {
		*calls++
		return set, err
	}
}

func TestCache_FetchesOnceWithinTTL(t *testing.T) {
	testkit.Serial(t)

	calls := 0
	c := NewCache(fixedFetcher(Set{"k1": struct{}{}}, nil, &calls), time.Hour)

	for i := 0; i < 5; i++ {
		set, err := c.Get(context.Background())
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if _, ok := set.Lookup("k1"); !ok {
			t.Fatalf("get %d: k1 missing", i)
		}
	}
	if calls != 1 {
		t.Fatalf("expected exactly one fetch within ttl, got %d", calls)
	}
}

func TestCache_RefreshesAfterTTL(t *testing.T) {
	testkit.Serial(t)

	now := time.Unix(1_700_000_000, 0)
	testkit.Swap(t, &timeNow, func() time.Time { return now })

	calls := 0
	c := NewCache(fixedFetcher(Set{"k1": struct{}{}}, nil, &calls), time.Hour)

	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}

	// still fresh one minute before expiry
	now = now.Add(59 * time.Minute)
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no refetch before ttl, got %d", calls)
	}

	// stale one minute after expiry
	now = now.Add(2 * time.Minute)
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("third get: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d", calls)
	}
}

func TestCache_FetchFailureSurfacesAndKeepsNothing(t *testing.T) {
	testkit.Serial(t)

	calls := 0
	boom := errors.New("jwks down")
	c := NewCache(fixedFetcher(nil, boom, &calls), time.Hour)

	if _, err := c.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	// no snapshot was stored; every call goes out again
	if _, err := c.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a fetch per failing call, got %d", calls)
	}
}

func TestCache_InvalidateForcesRefetch(t *testing.T) {
	testkit.Serial(t)

	calls := 0
	c := NewCache(fixedFetcher(Set{"k1": struct{}{}}, nil, &calls), time.Hour)

	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.Invalidate()
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d", calls)
	}
}

func TestCache_ZeroTTLUsesDefault(t *testing.T) {
	t.Parallel()

	c := NewCache(func(context.Context) (Set, error) { return Set{}, nil }, 0)
	if c.ttl != DefaultTTL {
		t.Fatalf("expected default ttl, got %v", c.ttl)
	}
}
