// Package ratelimit implements a per-client fixed-window request counter
// with periodic garbage collection of expired windows.
//
// This is deliberately a fixed-window counter, not a token bucket or a
// sliding window: a client that bursts across a window boundary can get up
// to 2×limit requests through in a short span. That approximation is part
// of the service contract, so do not "fix" it here.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Defaults used by New when an option is left at its zero value.
const (
	DefaultLimit  = 100
	DefaultWindow = 60 * time.Second
	DefaultSweep  = 5 * time.Minute
)

// entry tracks one client's request count in the current window.
type entry struct {
	count     int
	windowEnd time.Time
}

// Limiter is a mutex-guarded map of client key → window counter.
// All methods are safe for concurrent use; updates to a given client's
// counter are serialized so concurrent bursts are never undercounted.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit  int
	window time.Duration
	sweep  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// Option customizes a Limiter created by New.
type Option func(*Limiter)

// WithLimit sets the maximum number of requests allowed per window.
func WithLimit(n int) Option {
	return func(l *Limiter) { l.limit = n }
}

// WithWindow sets the window duration.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) { l.window = d }
}

// WithSweepEvery sets the interval between background sweeps.
func WithSweepEvery(d time.Duration) Option {
	return func(l *Limiter) { l.sweep = d }
}

// withClock overrides the time source. Test-only.
func withClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New constructs a Limiter with the given options applied over the defaults.
// The background sweep does not start until Run is called.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		limit:   DefaultLimit,
		window:  DefaultWindow,
		sweep:   DefaultSweep,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records one request for key and reports whether it is within the
// limit. The first request in a fresh or expired window always succeeds
// and opens a new window.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		l.entries[key] = &entry{count: 1, windowEnd: now.Add(l.window)}
		return true
	}
	e.count++
	return e.count <= l.limit
}

// Sweep removes every entry whose window has already ended, bounding the
// map to clients seen within the last window. Run calls this periodically;
// it is exported so tests can trigger it directly.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, key)
		}
	}
}

// Run sweeps expired entries every sweep interval until ctx is canceled.
// Call it in a goroutine from main; it returns when ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// size reports the number of tracked clients. Test helper.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
