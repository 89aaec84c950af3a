package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestResource(policy Policy) (*Store, *Resource[int]) {
	store := NewStore(zap.NewNop())
	return store, NewResource[int](store, "test", policy, zap.NewNop())
}

func countingFetch(calls *atomic.Int64, value *atomic.Int64) FetchFunc[int] {
	return func(ctx context.Context) (int, error) {
		calls.Add(1)
		return int(value.Load()), nil
	}
}

func TestEmptyKeySuppressesFetch(t *testing.T) {
	_, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	snap := r.Get(context.Background(), "", countingFetch(&calls, &value))

	if calls.Load() != 0 {
		t.Fatalf("fetch ran %d times, want 0", calls.Load())
	}
	if snap.Loading || snap.HasData || snap.Err != nil {
		t.Fatalf("want empty idle snapshot, got %+v", snap)
	}
}

func TestFirstGetFetches(t *testing.T) {
	_, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	value.Store(7)
	snap := r.Get(context.Background(), "k", countingFetch(&calls, &value))

	if calls.Load() != 1 {
		t.Fatalf("fetch ran %d times, want 1", calls.Load())
	}
	if !snap.HasData || snap.Data != 7 || snap.Loading || snap.Err != nil {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestGetWithoutFocusPolicyServesCache(t *testing.T) {
	_, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	fetch := countingFetch(&calls, &value)

	r.Get(context.Background(), "k", fetch)
	r.Get(context.Background(), "k", fetch)
	r.Get(context.Background(), "k", fetch)

	if calls.Load() != 1 {
		t.Fatalf("fetch ran %d times, want 1", calls.Load())
	}
}

func TestFocusPolicyRevalidatesOnEveryGet(t *testing.T) {
	_, r := newTestResource(Policy{RevalidateOnFocus: true})

	var calls, value atomic.Int64
	fetch := countingFetch(&calls, &value)

	value.Store(1)
	r.Get(context.Background(), "k", fetch)
	value.Store(2)
	snap := r.Get(context.Background(), "k", fetch)

	if calls.Load() != 2 {
		t.Fatalf("fetch ran %d times, want 2", calls.Load())
	}
	if snap.Data != 2 {
		t.Fatalf("data = %d, want refreshed 2", snap.Data)
	}
}

func TestDifferentKeysDoNotShareData(t *testing.T) {
	_, r := newTestResource(Policy{})

	a := r.Get(context.Background(), "a", func(ctx context.Context) (int, error) { return 1, nil })
	b := r.Get(context.Background(), "b", func(ctx context.Context) (int, error) { return 2, nil })

	if a.Data != 1 || b.Data != 2 {
		t.Fatalf("a=%d b=%d", a.Data, b.Data)
	}
}

func TestErrorKeepsLastKnownGood(t *testing.T) {
	_, r := newTestResource(Policy{})

	var fail atomic.Bool
	fetch := func(ctx context.Context) (int, error) {
		if fail.Load() {
			return 0, errors.New("down")
		}
		return 42, nil
	}

	r.Get(context.Background(), "k", fetch)
	fail.Store(true)
	snap := r.Revalidate(context.Background(), "k")

	if !snap.HasData || snap.Data != 42 {
		t.Fatalf("stale data dropped: %+v", snap)
	}
	if snap.Err == nil {
		t.Fatal("error not surfaced next to stale data")
	}
	if snap.Loading {
		t.Fatal("loading after first result")
	}

	// Next successful revalidation clears the error.
	fail.Store(false)
	snap = r.Revalidate(context.Background(), "k")
	if snap.Err != nil || snap.Data != 42 {
		t.Fatalf("error kept after success: %+v", snap)
	}
}

func TestStoreInvalidateRefetchesKnownKeys(t *testing.T) {
	store, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	fetch := countingFetch(&calls, &value)

	value.Store(1)
	r.Get(context.Background(), "k", fetch)

	value.Store(2)
	store.Invalidate(context.Background(), "k", "unknown-key")

	snap := r.Snapshot("k")
	if snap.Data != 2 {
		t.Fatalf("data = %d, want 2 after invalidation", snap.Data)
	}
	if calls.Load() != 2 {
		t.Fatalf("fetch ran %d times, want 2", calls.Load())
	}
}

func TestStoreInvalidatePrefix(t *testing.T) {
	store, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	fetch := countingFetch(&calls, &value)

	r.Get(context.Background(), "/api/products", fetch)
	r.Get(context.Background(), "/api/products?category=Main", fetch)
	r.Get(context.Background(), "/api/cart/u1", fetch)

	calls.Store(0)
	store.InvalidatePrefix(context.Background(), "/api/products")

	if calls.Load() != 2 {
		t.Fatalf("fetch ran %d times, want 2 (both product entries)", calls.Load())
	}
}

func TestConcurrentRevalidationsCoalesce(t *testing.T) {
	_, r := newTestResource(Policy{})

	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	}

	r.Get(context.Background(), "k", fetch)
	calls.Store(0)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			r.Revalidate(context.Background(), "k")
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	// All eight should collapse into one or two flights, never eight.
	if got := calls.Load(); got > 2 {
		t.Fatalf("fetch ran %d times, want coalesced", got)
	}
}

func TestWatchPollsUntilStopped(t *testing.T) {
	_, r := newTestResource(Policy{RefreshInterval: 10 * time.Millisecond})

	var calls, value atomic.Int64
	stop := r.Watch(context.Background(), "k", countingFetch(&calls, &value))

	time.Sleep(60 * time.Millisecond)
	stop()
	after := calls.Load()

	if after < 3 {
		t.Fatalf("fetch ran %d times while watching, want polling", after)
	}

	time.Sleep(40 * time.Millisecond)
	if calls.Load() > after+1 {
		t.Fatalf("still polling after stop: %d -> %d", after, calls.Load())
	}
}

func TestWatchWithoutIntervalFetchesOnce(t *testing.T) {
	_, r := newTestResource(Policy{})

	var calls, value atomic.Int64
	stop := r.Watch(context.Background(), "k", countingFetch(&calls, &value))
	defer stop()

	time.Sleep(30 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("fetch ran %d times, want 1", calls.Load())
	}
}
