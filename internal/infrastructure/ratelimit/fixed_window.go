package ratelimit

import (
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/connector"
)

const (
	// DefaultLimit is the request ceiling per (provider, user) window
	DefaultLimit = 60
	// DefaultWindow is the fixed window length
	DefaultWindow = time.Minute

	staleSweepInterval = 5 * time.Minute
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter bounds request volume per (provider, user) key
// with a fixed window counter. When the window passes, the counter is
// replaced wholesale rather than decayed. Denied attempts are not
// counted against the window.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	length  time.Duration
	stopCh  chan struct{}
	nowFunc func() time.Time
}

// NewFixedWindowLimiter creates a limiter. Non-positive limit or
// length fall back to the defaults.
func NewFixedWindowLimiter(limit int, length time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if length <= 0 {
		length = DefaultWindow
	}
	l := &FixedWindowLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		length:  length,
		stopCh:  make(chan struct{}),
		nowFunc: time.Now,
	}
	go l.sweepStale()
	return l
}

// Allow records one request attempt and reports whether it is within
// the limit
func (l *FixedWindowLimiter) Allow(provider connector.Provider, userID string) bool {
	return l.AllowKey(string(provider) + ":" + userID)
}

// AllowKey is Allow for an arbitrary opaque key. Used by the HTTP layer
// to bound per-IP request volume with the same window semantics.
func (l *FixedWindowLimiter) AllowKey(key string) bool {
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.length)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many requests are left in the current window
func (l *FixedWindowLimiter) Remaining(provider connector.Provider, userID string) int {
	key := string(provider) + ":" + userID
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		return l.limit
	}
	if w.count >= l.limit {
		return 0
	}
	return l.limit - w.count
}

// Stop terminates the background sweep goroutine
func (l *FixedWindowLimiter) Stop() {
	close(l.stopCh)
}

// sweepStale drops windows whose reset time has long passed so keys
// for one-off users do not accumulate forever.
func (l *FixedWindowLimiter) sweepStale() {
	ticker := time.NewTicker(staleSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			now := l.nowFunc()
			l.mu.Lock()
			for key, w := range l.windows {
				if !now.Before(w.resetAt) {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

var _ connector.RateLimiter = (*FixedWindowLimiter)(nil)
