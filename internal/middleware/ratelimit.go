package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vitalrec/health-api/internal/handler"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
}

type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(config.RPS), config.Burst),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, handler.NewErrorResponse("rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
