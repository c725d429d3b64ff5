// Package ratelimit provides sliding-window admission control per client.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits up to limit requests per client within a trailing window.
// Windows prune themselves on every decision, so memory stays bounded by
// the identities seen within the last window. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	window  time.Duration
	limit   int
	now     func() time.Time
}

// New constructs a limiter admitting limit requests per window per client.
func New(window time.Duration, limit int) *Limiter {
	return &Limiter{
		clients: make(map[string][]time.Time),
		window:  window,
		limit:   limit,
		now:     time.Now,
	}
}

// Allow decides admission for clientID. It records the request timestamp
// only when admitting; rejected calls leave the window untouched.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.clients[clientID][:0]
	for _, ts := range l.clients[clientID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.clients[clientID] = kept
		return false
	}

	l.clients[clientID] = append(kept, now)
	return true
}
