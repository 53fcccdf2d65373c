package http

import (
	nethttp "net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// StartLimiter caps how often one browser may start a session inside a
// sliding window.
type StartLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time
}

func NewStartLimiter(limit int, interval time.Duration) *StartLimiter {
	return &StartLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

func (rl *StartLimiter) Allow(token string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	windowStart := now.Add(-rl.interval)

	// Forget browsers whose newest attempt left the window.
	for tok, ts := range rl.history {
		if len(ts) == 0 || !ts[len(ts)-1].After(windowStart) {
			delete(rl.history, tok)
		}
	}

	attempts := rl.history[token]
	fresh := make([]time.Time, 0, len(attempts)+1)
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) >= rl.limit {
		rl.history[token] = fresh
		return false
	}
	rl.history[token] = append(fresh, now)
	return true
}

// Middleware rejects requests over the limit with 429.
func (rl *StartLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.GetString(clientTokenKey)) {
			c.AbortWithStatusJSON(nethttp.StatusTooManyRequests, gin.H{"error": "too many session starts"})
			return
		}
		c.Next()
	}
}
