package auth

import (
	"sync"
	"time"
)

// LoginLimiter is a fixed-window per-IP attempt counter. A successful login
// resets the window for that IP. Expired windows of other IPs are pruned on
// each attempt so the map stays bounded by the active client set.
type LoginLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	attempts  map[string]*windowState
	lastPrune time.Time
}

type windowState struct {
	count int
	start time.Time
}

// NewLoginLimiter builds a limiter allowing max attempts per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{
		window:   window,
		max:      max,
		attempts: map[string]*windowState{},
	}
}

// Allow records an attempt and reports whether it is within the limit.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	st, ok := l.attempts[ip]
	if !ok || now.Sub(st.start) > l.window {
		l.attempts[ip] = &windowState{count: 1, start: now}
		return true
	}
	st.count++
	return st.count <= l.max
}

// prune drops expired windows, at most once per window. Callers hold l.mu.
func (l *LoginLimiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.window {
		return
	}
	l.lastPrune = now
	for ip, st := range l.attempts {
		if now.Sub(st.start) > l.window {
			delete(l.attempts, ip)
		}
	}
}

// Reset clears the counter for ip.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, ip)
}
