// Package sync implements the client-side data synchronization layer:
// key-addressed caches of server-owned resources, refreshed by
// per-resource revalidation policies and invalidated by mutation flows.
// Cached copies are never authoritative; the server is the sole source
// of truth and every write is followed by a re-fetch, not a local patch.
package sync

import (
	"context"
	"strings"
	stdsync "sync"

	"go.uber.org/zap"
)

// Store indexes every live cache entry by key so mutation flows can
// invalidate the reads they affect without knowing which resource owns
// the entry. Unknown keys are ignored: nothing cached means nothing to
// refresh.
type Store struct {
	mu           stdsync.Mutex
	revalidators map[string]func(ctx context.Context)
	log          *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		revalidators: make(map[string]func(ctx context.Context)),
		log:          log,
	}
}

func (s *Store) register(key string, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revalidators[key] = fn
}

// Invalidate re-fetches every named key that has a live cache entry.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		s.mu.Lock()
		fn, ok := s.revalidators[key]
		s.mu.Unlock()

		if !ok {
			s.log.Debug("No cache entry for key", zap.String("key", key))
			continue
		}
		fn(ctx)
	}
}

// InvalidatePrefix re-fetches every cached key under prefix. Used for
// parameterized lists where each filter set is its own entry.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) {
	s.mu.Lock()
	var fns []func(ctx context.Context)
	for key, fn := range s.revalidators {
		if strings.HasPrefix(key, prefix) {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
