package transporthttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/futureatoms/summitwire/internal/ports"
)

// Limiter throttles per-client request rates against a shared counter store,
// so the limit holds across instances and restarts. It fails open: when the
// store is unreachable the request is allowed and the error logged.
type Limiter struct {
	store    ports.CounterStore
	requests int
	window   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewLimiter builds a limiter; a nil store disables it.
func NewLimiter(store ports.CounterStore, requests int, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{
		store:    store,
		requests: requests,
		window:   window,
		logger:   logger,
		now:      time.Now,
	}
}

// Allow reports whether the client may proceed within the current window.
func (l *Limiter) Allow(ctx context.Context, clientKey string) bool {
	if l == nil || l.store == nil || l.requests <= 0 || l.window <= 0 {
		return true
	}

	bucket := l.now().Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", clientKey, bucket)

	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("rate limit store unavailable", "error", err)
		}
		return true
	}
	return count <= int64(l.requests)
}

// Middleware rejects over-limit clients with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
