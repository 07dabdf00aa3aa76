package server

import (
	"sync"
	"time"
)

// fakeClock is a manual Clock. Tickers never fire on their own; tests call
// the runner's handlers directly or push ticks with fire.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time, 1), period: d}
	c.tickers = append(c.tickers, t)
	return t
}

type fakeTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	period  time.Duration
	stopped bool
	resets  int
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.period = d
	t.stopped = false
	t.resets++
}

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) Period() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.period
}

func (t *fakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers a tick unless one is already pending.
func (t *fakeTicker) fire(now time.Time) {
	select {
	case t.ch <- now:
	default:
	}
}
