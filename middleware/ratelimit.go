package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (il *ipLimiter) touch() {
	il.mu.Lock()
	il.lastSeen = time.Now()
	il.mu.Unlock()
}

func (il *ipLimiter) idleSince(cutoff time.Time) bool {
	il.mu.Lock()
	defer il.mu.Unlock()
	return il.lastSeen.Before(cutoff)
}

// RateLimit provides per-IP token-bucket rate limiting: rps requests per
// second with the given burst. A non-positive rps disables the limit.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiters := &sync.Map{}

	// drop limiters of clients idle for ten minutes
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-10 * time.Minute)
			limiters.Range(func(k, v any) bool {
				if v.(*ipLimiter).idleSince(cutoff) {
					limiters.Delete(k)
				}
				return true
			})
		}
	}()

	return func(c *gin.Context) {
		v, _ := limiters.LoadOrStore(c.ClientIP(), &ipLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)})
		il := v.(*ipLimiter)
		il.touch()
		if !il.limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
