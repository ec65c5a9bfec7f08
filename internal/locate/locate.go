// Package locate resolves queueing endpoints. Resolution is expensive
// (it asks a collector where a scheduler lives), so resolved endpoints
// are cached with a bounded lifetime instead of forever.
package locate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gridwork/jobflow/internal/handle"
	"github.com/gridwork/jobflow/internal/schedd"
)

// DefaultTTL is how long a resolved endpoint stays usable before it is
// looked up again.
const DefaultTTL = 5 * time.Minute

// Resolver performs one endpoint lookup.
type Resolver func(ctx context.Context, scope handle.Scope) (schedd.Scheduler, error)

type entry struct {
	sched   schedd.Scheduler
	expires time.Time
}

// Cache memoizes endpoint resolution per scope. Entries expire after
// the cache's TTL; an expired entry is re-resolved on next use. Safe
// for concurrent use.
type Cache struct {
	resolve Resolver
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[handle.Scope]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source. Tests use this to expire
// entries without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache builds a cache over the given resolver.
func NewCache(resolve Resolver, opts ...Option) *Cache {
	c := &Cache{
		resolve: resolve,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[handle.Scope]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the endpoint for a scope, resolving it if the cache
// has no live entry.
func (c *Cache) Lookup(ctx context.Context, scope handle.Scope) (schedd.Scheduler, error) {
	c.mu.Lock()
	if e, ok := c.entries[scope]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.sched, nil
	}
	c.mu.Unlock()

	slog.Debug("resolving endpoint",
		"collector", scope.Collector,
		"scheduler", scope.Scheduler,
	)
	sched, err := c.resolve(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("locate %v: %w", scope, err)
	}

	c.mu.Lock()
	c.entries[scope] = entry{sched: sched, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return sched, nil
}

// Invalidate drops the cached entry for a scope, forcing the next
// Lookup to resolve again.
func (c *Cache) Invalidate(scope handle.Scope) {
	c.mu.Lock()
	delete(c.entries, scope)
	c.mu.Unlock()
}

// Len returns the number of cached entries, live or expired.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
