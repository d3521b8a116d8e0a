package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	clients map[string]*clientWindow
	mu      sync.Mutex
	limit   int
	window  time.Duration
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

var limiter = newRateLimiter(100, time.Minute)

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup()
		}
	}()

	return rl
}

// RateLimiter caps requests per client IP over a fixed window.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryAfter, ok := limiter.allow(c.ClientIP())
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) allow(ip string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[ip]

	if !exists || now.After(client.resetAt) {
		rl.clients[ip] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return 0, true
	}

	if client.count >= rl.limit {
		return client.resetAt.Sub(now), false
	}

	client.count++
	return 0, true
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, client := range rl.clients {
		if now.After(client.resetAt) {
			delete(rl.clients, ip)
		}
	}
}
