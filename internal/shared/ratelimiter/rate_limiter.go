// Package ratelimiter limits how often a client may call sensitive endpoints such as signin.
package ratelimiter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether one more request for key fits in the current window.
// When it does not, retryAfter reports how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// Parse reads a rate such as "5/minute" into a request count and a window.
func Parse(rate string) (int, time.Duration, error) {
	count, unit, ok := strings.Cut(strings.TrimSpace(rate), "/")
	if !ok {
		return 0, 0, fmt.Errorf("rate %q must look like 5/minute", rate)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n <= 0 {
		return 0, 0, fmt.Errorf("rate %q must start with a positive count", rate)
	}

	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "second", "s":
		window = time.Second
	case "minute", "m":
		window = time.Minute
	case "hour", "h":
		window = time.Hour
	case "day", "d":
		window = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("rate %q has unknown unit %q", rate, unit)
	}
	return n, window, nil
}

// maxTrackedKeys bounds the memory limiter before it sweeps stale windows.
const maxTrackedKeys = 10000

type window struct {
	count     int
	lastReset time.Time
}

// MemoryLimiter is a per-process fixed-window limiter.
// It is used when Redis is not configured, so limits are not shared between replicas.
type MemoryLimiter struct {
	limit    int           // requests allowed per interval
	interval time.Duration // window length
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewMemoryLimiter creates a MemoryLimiter allowing limit requests per interval and key.
func NewMemoryLimiter(limit int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow counts one request for key.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.windows) >= maxTrackedKeys {
		rl.sweep(now)
	}

	w, ok := rl.windows[key]
	// reset the count once the interval has passed
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.lastReset), nil
	}
	return true, 0, nil
}

func (rl *MemoryLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
