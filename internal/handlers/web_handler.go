package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/middleware"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/timezone"
	authuc "github.com/zhotheone/nailapp/internal/usecase/auth"
)

type WebHandler struct {
	authn   *authuc.Authenticate
	cookies middleware.Cookies
	loc     *time.Location
}

func NewWebHandler(authn *authuc.Authenticate, cookies middleware.Cookies, loc *time.Location) *WebHandler {
	return &WebHandler{authn: authn, cookies: cookies, loc: loc}
}

// LoginPage sends already signed-in users to the dashboard.
func (h *WebHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(h.cookies.Name); err == nil {
		if _, err := h.authn.Execute(c.Request.Context(), token); err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}

	c.HTML(http.StatusOK, "login", gin.H{
		"Title": "Login",
	})
}

func (h *WebHandler) Dashboard(c *gin.Context) {
	user := c.MustGet(middleware.ContextUser).(*models.User)

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Title":    "Dashboard",
		"Username": user.Username,
		"Today":    timezone.NowIn(h.loc).Format("2006-01-02"),
	})
}
