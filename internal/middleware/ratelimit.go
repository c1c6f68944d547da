package middleware

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/ratelimit"
)

// RateLimit caps requests per client IP. A failing counter store lets the
// request through.
func RateLimit(l *ratelimit.Limiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("ratelimit_error client_ip=%s error=%q", c.ClientIP(), err.Error())
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(l.Window().Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": message,
				"code":  "rate_limited",
			})
			return
		}
		c.Next()
	}
}
