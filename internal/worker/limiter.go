package worker

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-client request rate limiting for the HTTP API.
// Each client key (normally the remote address) gets its own token bucket.
type Limiter struct {
	clients      map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing requestsPerSecond per client with the
// given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		clients:      make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow reports whether the client may make a request right now.
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.clients[client]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists := l.clients[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.clients[client] = limiter
	return limiter
}
