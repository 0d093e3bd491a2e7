package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	log      *zap.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
		log:      log,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup drops buckets idle for longer than the idle window.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := rl.now().Add(-rl.idle)
	for key, v := range rl.limiters {
		if v.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// Handler answers 429 once the caller's bucket is empty.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.allow(key) {
			rl.log.Warn("rate limit exceeded",
				zap.String("client_ip", key),
				zap.String("path", c.Request.URL.Path),
				zap.String("trace_id", c.GetString(CtxTraceID)),
			)
			utils.AbortWithError(c, http.StatusTooManyRequests, i18n.KeyTooManyRequests)
			return
		}
		c.Next()
	}
}
