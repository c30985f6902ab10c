package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// Upload endpoints are expensive (file parse plus store lookups), so each
// client IP gets its own small token bucket.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	rl := &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		limit:    limit,
		burst:    burst,
	}
	go rl.evictStale()
	return rl
}

func (rl *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = limiter
	}
	rl.lastSeen[ip] = time.Now()
	return limiter
}

func (rl *ipRateLimiter) evictStale() {
	for range time.Tick(10 * time.Minute) {
		rl.mu.Lock()
		for ip, seen := range rl.lastSeen {
			if time.Since(seen) > 30*time.Minute {
				delete(rl.limiters, ip)
				delete(rl.lastSeen, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// UploadRateLimit limits import uploads per client IP.
func UploadRateLimit() fiber.Handler {
	rl := newIPRateLimiter(rate.Every(2*time.Second), 5)

	return func(c *fiber.Ctx) error {
		if !rl.limiterFor(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many upload requests, slow down",
			})
		}
		return c.Next()
	}
}
