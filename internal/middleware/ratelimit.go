// Package middleware provides the gin middleware used by the routeviz API.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxBuckets is the maximum number of tracked IPs to prevent memory exhaustion.
const maxBuckets = 100_000

// RateLimiter is a per-IP token bucket limiter. Route comparisons are CPU
// bound, so the rate is fractional and refills continuously.
type RateLimiter struct {
	buckets map[string]*bucket
	mu      sync.Mutex
	rate    float64
	burst   float64
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// take refills the bucket for the time elapsed and consumes one token.
// When empty it returns the wait until the next token.
func (rl *RateLimiter) take(b *bucket, now time.Time) (bool, time.Duration) {
	b.tokens = math.Min(rl.burst, b.tokens+now.Sub(b.lastFill).Seconds()*rl.rate)
	b.lastFill = now

	if b.tokens >= 1 {
		b.tokens--

		return true, 0
	}

	wait := time.Duration((1 - b.tokens) / rl.rate * float64(time.Second))

	return false, wait
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec requests per second
// with the given burst. A background goroutine evicts idle buckets until ctx
// is canceled.
func NewRateLimiter(ctx context.Context, ratePerSec float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    ratePerSec,
		burst:   float64(burst),
		now:     time.Now,
	}
	go rl.startCleanup(ctx)

	return rl
}

func (rl *RateLimiter) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxAge = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastFill) > maxAge {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that applies rate limiting per client IP.
// Rejections carry a Retry-After header in whole seconds.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP ignores forwarding headers because the router trusts no proxies.
		ip := c.ClientIP()
		now := rl.now()

		rl.mu.Lock()
		b, ok := rl.buckets[ip]
		if !ok {
			if len(rl.buckets) >= maxBuckets {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			b = &bucket{tokens: rl.burst, lastFill: now}
			rl.buckets[ip] = b
		}

		allowed, wait := rl.take(b, now)
		rl.mu.Unlock()

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
