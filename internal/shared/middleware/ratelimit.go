package middleware

import (
	"sync"
	"time"

	"github.com/fpt-software/website-api/internal/config"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// idleLimiterTTL is how long a client's limiter survives without traffic.
	idleLimiterTTL = 10 * time.Minute
	// limiterSweepInterval is how often expired limiters are dropped.
	limiterSweepInterval = time.Minute
)

// IPRateLimiter hands out one token bucket per client IP. Buckets live in a
// go-cache whose janitor drops clients idle for longer than the TTL.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients *goCache.Cache
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewIPRateLimiter(cfg config.RateLimitConfig) *IPRateLimiter {
	return newIPRateLimiter(cfg, idleLimiterTTL, limiterSweepInterval)
}

func newIPRateLimiter(cfg config.RateLimitConfig, idle, sweep time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		clients: goCache.New(idle, sweep),
		limit:   rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		now:     time.Now,
	}
}

// Allow reports whether ip may make another request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.lookup(ip)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// Re-setting restarts the idle TTL.
	l.clients.SetDefault(ip, limiter)
	l.mu.Unlock()

	return limiter.AllowN(l.now(), 1)
}

func (l *IPRateLimiter) lookup(ip string) (*rate.Limiter, bool) {
	value, ok := l.clients.Get(ip)
	if !ok {
		return nil, false
	}
	limiter, ok := value.(*rate.Limiter)
	return limiter, ok
}

// RateLimit rejects requests above the per-IP budget with 429.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			resp := sharedError.TooManyRequests
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
