package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/dto"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/middleware"
	authuc "github.com/zhotheone/nailapp/internal/usecase/auth"
)

type AuthHandler struct {
	login   *authuc.Login
	logout  *authuc.Logout
	authn   *authuc.Authenticate
	cookies middleware.Cookies
}

func NewAuthHandler(
	login *authuc.Login,
	logout *authuc.Logout,
	authn *authuc.Authenticate,
	cookies middleware.Cookies,
) *AuthHandler {
	return &AuthHandler{login: login, logout: logout, authn: authn, cookies: cookies}
}

// Login accepts JSON or a submitted form.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_body", "Invalid request body"))
		return
	}

	res, err := h.login.Execute(c.Request.Context(), authuc.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.cookies.Set(c, res.Token)
	httpresp.OK(c, gin.H{
		"success": true,
		"user": gin.H{
			"username": res.User.Username,
			"role":     res.User.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookies.Name)
	if err := h.logout.Execute(c.Request.Context(), token); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.cookies.Clear(c)
	httpresp.OK(c, gin.H{"success": true})
}

// Status backs both /status and /check.
func (h *AuthHandler) Status(c *gin.Context) {
	token, _ := c.Cookie(h.cookies.Name)

	p, err := h.authn.Execute(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	if p.Refreshed != "" {
		h.cookies.Set(c, p.Refreshed)
	}

	httpresp.OK(c, gin.H{
		"authenticated": true,
		"userId":        p.User.ID,
	})
}
