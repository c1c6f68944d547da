package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/middleware"
	"github.com/zhotheone/nailapp/internal/models"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user := c.MustGet(middleware.ContextUser).(*models.User)

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"role":      user.Role,
			"lastLogin": user.LastLogin,
		},
	})
}
