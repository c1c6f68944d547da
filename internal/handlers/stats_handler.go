package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	ucStats "github.com/zhotheone/nailapp/internal/usecase/stats"
)

type StatsHandler struct {
	reports *ucStats.Reports
}

func NewStatsHandler(reports *ucStats.Reports) *StatsHandler {
	return &StatsHandler{reports: reports}
}

func (h *StatsHandler) Summary(c *gin.Context) {
	s, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *StatsHandler) MonthlyRevenue(c *gin.Context) {
	list, err := h.reports.MonthlyRevenue(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *StatsHandler) ClientRetention(c *gin.Context) {
	list, err := h.reports.ClientRetention(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}
