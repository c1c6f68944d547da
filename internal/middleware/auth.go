package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/audit"
	"github.com/zhotheone/nailapp/internal/models"
	authuc "github.com/zhotheone/nailapp/internal/usecase/auth"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
)

// SessionAuth admits requests carrying a live session cookie. API routes get
// 401 otherwise; page routes are redirected to /login.
func SessionAuth(authn *authuc.Authenticate, cookies Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookies.Name)

		p, err := authn.Execute(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, authuc.ErrUnauthenticated) {
				log.Printf("auth_error path=%s error=%q", c.Request.URL.Path, err.Error())
			}
			cookies.Clear(c)
			deny(c)
			return
		}

		if p.Refreshed != "" {
			cookies.Set(c, p.Refreshed)
		}

		c.Set(ContextUserID, p.User.ID)
		c.Set(ContextUserRole, p.User.Role)
		c.Set(ContextUser, p.User)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), p.User.ID))

		c.Next()
	}
}

// RequireAdmin must run after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden", "code": "forbidden"})
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
