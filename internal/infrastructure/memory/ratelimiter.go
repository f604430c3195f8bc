package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/pkg/ratelimit"
)

// FixedWindowLimiter is the in-process fallback used when Redis is not configured.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	count int
	reset time.Time
}

func NewFixedWindowLimiter() *FixedWindowLimiter {
	return &FixedWindowLimiter{windows: make(map[string]*window), now: time.Now}
}

func (l *FixedWindowLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, win time.Duration) (ratelimit.Decision, error) {
	if limit <= 0 {
		return ratelimit.Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if win <= 0 {
		win = time.Minute
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(win)}
		l.windows[key] = w
	}
	w.count++

	if len(l.windows) > 10000 {
		for k, v := range l.windows {
			if !now.Before(v.reset) {
				delete(l.windows, k)
			}
		}
	}

	return ratelimit.Allow(w.count, limit, w.reset.Sub(now), now), nil
}
