package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter tracks one token bucket per client IP. Stale entries are
// evicted so the map does not grow without bound.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	cl := &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go cl.cleanup()
	return cl
}

func (cl *clientLimiter) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	entry, exists := cl.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (cl *clientLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		cl.mu.Lock()
		for ip, entry := range cl.limiters {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(cl.limiters, ip)
			}
		}
		cl.mu.Unlock()
	}
}

// RateLimit throttles the unauthenticated auth endpoints (signup and token
// exchange) per client IP.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	cl := newClientLimiter(rps, burst)
	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
