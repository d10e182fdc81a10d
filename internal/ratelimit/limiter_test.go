package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually-advanced time source for deterministic window tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(WithLimit(limit), WithWindow(window), withClock(clock.Now))
	return l, clock
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"), "request over the limit should be rejected")
}

func TestLimiter_HundredFirstRequestRejected(t *testing.T) {
	l, _ := newTestLimiter(DefaultLimit, DefaultWindow)

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("client"), "request %d", i+1)
	}
	assert.False(t, l.Allow("client"), "101st request in the window must be rejected")
}

func TestLimiter_FreshWindowAllowsAgain(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))

	// Just past the window end the counter resets.
	clock.Advance(time.Minute + time.Second)
	assert.True(t, l.Allow("k"), "first request in a fresh window must succeed")
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "a second client must have its own counter")
}

func TestLimiter_SweepEvictsExpiredEntries(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	l.Allow("old")
	clock.Advance(30 * time.Second)
	l.Allow("fresh")

	// "old" and "fresh" windows end at +60s and +90s respectively.
	clock.Advance(45 * time.Second)
	l.Sweep()

	assert.Equal(t, 1, l.size(), "only the unexpired entry should remain")
}

func TestLimiter_SweepKeepsActiveEntries(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)

	l.Allow("a")
	l.Allow("b")
	l.Sweep()

	assert.Equal(t, 2, l.size())
}

// TestLimiter_ConcurrentBurstNeverUndercounts hammers one key from many
// goroutines and checks that exactly limit requests got through — the
// per-key serialization must not lose increments.
func TestLimiter_ConcurrentBurstNeverUndercounts(t *testing.T) {
	const limit = 50
	const requests = 200
	l, _ := newTestLimiter(limit, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("burst") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}
