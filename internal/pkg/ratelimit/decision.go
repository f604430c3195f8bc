// Package ratelimit holds the limiter result shared by limiter backends and
// the HTTP middleware.
package ratelimit

import "time"

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Count      int
	RetryAfter time.Duration // 0 if allowed
	ResetAt    time.Time     // window end (best-effort)
}

// Allow builds the decision for the count-th hit in a window of limit.
func Allow(count, limit int, ttl time.Duration, now time.Time) Decision {
	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(0, limit-count),
		Count:     count,
		ResetAt:   now.Add(ttl),
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d
}
