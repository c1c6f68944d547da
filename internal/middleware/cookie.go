package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookies describes the session cookie.
type Cookies struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (k Cookies) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.Name, token, int(k.TTL.Seconds()), "/", "", k.Secure, true)
}

func (k Cookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.Name, "", -1, "/", "", k.Secure, true)
}
