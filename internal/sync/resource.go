package sync

import (
	"context"
	stdsync "sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Snapshot is the observable state of one cache key. Loading is true
// only while a key is present and neither data nor an error has
// arrived yet; after the first result the consumer always sees the
// last-known-good data, with Err raised alongside it when the latest
// revalidation failed.
type Snapshot[T any] struct {
	Data    T
	HasData bool
	Err     error
	Loading bool
}

// Policy is a resource's revalidation contract. A zero RefreshInterval
// means no polling; RevalidateOnFocus refreshes the entry whenever a
// consumer comes back to it.
type Policy struct {
	RefreshInterval   time.Duration
	RevalidateOnFocus bool
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource is a cache of T values addressed by key. All per-resource
// read hooks share this one implementation, parameterized by key
// derivation, fetch function and policy. Entries for different keys
// never share data.
type Resource[T any] struct {
	store  *Store
	name   string
	policy Policy
	log    *zap.Logger

	mu      stdsync.Mutex
	entries map[string]*entry[T]
	flight  singleflight.Group
}

type entry[T any] struct {
	fetch   FetchFunc[T]
	data    T
	hasData bool
	err     error
}

func NewResource[T any](store *Store, name string, policy Policy, log *zap.Logger) *Resource[T] {
	return &Resource[T]{
		store:   store,
		name:    name,
		policy:  policy,
		log:     log,
		entries: make(map[string]*entry[T]),
	}
}

// Get returns the state under key, fetching on the first sight of the
// key. An empty key suppresses the fetch entirely: no network call, no
// loading state. Revisiting a known key with a focus policy triggers a
// revalidation before returning.
func (r *Resource[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) Snapshot[T] {
	if key == "" {
		return Snapshot[T]{}
	}

	r.mu.Lock()
	e, known := r.entries[key]
	if !known {
		e = &entry[T]{fetch: fetch}
		r.entries[key] = e
		r.store.register(key, func(ctx context.Context) { r.revalidate(ctx, key) })
	} else {
		// Keep the freshest parameter bindings for later revalidations.
		e.fetch = fetch
	}
	r.mu.Unlock()

	if !known || r.policy.RevalidateOnFocus {
		r.revalidate(ctx, key)
	}

	return r.Snapshot(key)
}

// Revalidate forces an immediate re-fetch of key: the mutate() analog
// used as the invalidation mechanism after writes. Unknown keys are a
// no-op.
func (r *Resource[T]) Revalidate(ctx context.Context, key string) Snapshot[T] {
	r.revalidate(ctx, key)
	return r.Snapshot(key)
}

// Snapshot reads the current state without touching the network.
func (r *Resource[T]) Snapshot(key string) Snapshot[T] {
	if key == "" {
		return Snapshot[T]{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		// Key present but nothing has been asked for yet.
		return Snapshot[T]{Loading: true}
	}
	return Snapshot[T]{
		Data:    e.data,
		HasData: e.hasData,
		Err:     e.err,
		Loading: !e.hasData && e.err == nil,
	}
}

// Watch drives the resource's polling policy for key until stop is
// called or ctx is done. Stopping only stops the timer; in-flight
// requests are not aborted.
func (r *Resource[T]) Watch(ctx context.Context, key string, fetch FetchFunc[T]) (stop func()) {
	if key == "" {
		return func() {}
	}

	r.Get(ctx, key, fetch)

	if r.policy.RefreshInterval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var once stdsync.Once

	go func() {
		ticker := time.NewTicker(r.policy.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.revalidate(ctx, key)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

func (r *Resource[T]) revalidate(ctx context.Context, key string) {
	r.mu.Lock()
	e, ok := r.entries[key]
	var fetch FetchFunc[T]
	if ok {
		fetch = e.fetch
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	// Concurrent revalidations of one key collapse into a single
	// flight; everyone sees the same response.
	v, err, _ := r.flight.Do(key, func() (any, error) {
		return fetch(ctx)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		// Keep last-known-good data, surface the error next to it.
		e.err = err
		r.log.Warn("Revalidation failed",
			zap.String("resource", r.name),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	e.data = v.(T)
	e.hasData = true
	e.err = nil
}
