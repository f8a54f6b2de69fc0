package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/metrics"
	"github.com/yukikurage/todo-web/internal/utils"
)

// RateLimiter is a fixed-window limiter keyed by client IP, backed by Redis
// INCR/EXPIRE. Blocked requests re-apply a missing EXPIRE. It fails open: without Redis, or when Redis errors, every
// request is let through.
type RateLimiter struct {
	client      redis.Cmdable
	maxRequests int
	window      time.Duration
	// blockedURL is where blocked browser requests are redirected.
	blockedURL string
}

// NewRateLimiter creates a limiter. client may be nil.
func NewRateLimiter(client redis.Cmdable, maxRequests int, window time.Duration, blockedURL string) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		blockedURL:  blockedURL,
	}
}

// Middleware limits the route it is attached to.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.client == nil || l.maxRequests <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rl:" + c.FullPath() + ":" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + c.ClientIP()

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if count == 1 {
			l.expire(ctx, key)
		}

		if count > int64(l.maxRequests) {
			// a key left without a TTL would block the client for good
			if ttl, err := l.client.TTL(ctx, key).Result(); err == nil && ttl == -1 {
				l.expire(ctx, key)
			}

			metrics.RateLimited.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			if utils.WantsJSON(c) {
				apierrors.TooManyRequests(c, "rate limit exceeded")
				return
			}
			c.Redirect(http.StatusFound, l.blockedURL)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) expire(ctx context.Context, key string) {
	if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to set rate limit window")
	}
}
