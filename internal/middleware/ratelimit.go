package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimitByIP allows perMinute requests per client IP, with bursts of the
// same size. perMinute <= 0 disables the limit.
func RateLimitByIP(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute), time.Hour
		},
		func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
		},
	)
}
