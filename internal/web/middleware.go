package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimiter throttles each client IP to limit requests per second with
// the given burst. Idle limiters expire after ten minutes. A non-positive
// limit disables throttling.
func RateLimiter(limit float64, burst int) gin.HandlerFunc {
	limiters := cache.New(10*time.Minute, 20*time.Minute)

	return func(ctx *gin.Context) {
		if limit <= 0 {
			ctx.Next()
			return
		}
		ip := ctx.ClientIP()

		var limiter *rate.Limiter
		if val, found := limiters.Get(ip); found {
			limiter = val.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(limit), burst)
			limiters.Set(ip, limiter, cache.DefaultExpiration)
		}

		if !limiter.Allow() {
			ctx.Header("Retry-After", "1")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		ctx.Next()
	}
}

// RecoveryMiddleware turns panics into a 500 and logs them.
func RecoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Interface("panic", err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
		}
	}()
	c.Next()
}

// ZerologMiddleware logs one line per request, skipping health checks.
func ZerologMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api/health" {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
