package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/dto"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	ucSchedule "github.com/zhotheone/nailapp/internal/usecase/schedule"
	"github.com/zhotheone/nailapp/internal/validators"
)

type ScheduleHandler struct {
	registry *ucSchedule.Registry
}

func NewScheduleHandler(registry *ucSchedule.Registry) *ScheduleHandler {
	return &ScheduleHandler{registry: registry}
}

func (h *ScheduleHandler) List(c *gin.Context) {
	list, err := h.registry.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ScheduleHandler) Upsert(c *gin.Context) {
	in, ok := bindTemplate(c)
	if !ok {
		return
	}

	s, err := h.registry.Upsert(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ScheduleHandler) Replace(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	in, ok := bindTemplate(c)
	if !ok {
		return
	}

	s, err := h.registry.Replace(c.Request.Context(), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func bindTemplate(c *gin.Context) (ucSchedule.TemplateInput, bool) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return ucSchedule.TemplateInput{}, false
	}
	return ucSchedule.TemplateInput{
		DayOfWeek: *req.DayOfWeek,
		IsWeekend: req.IsWeekend,
		TimeTable: req.TimeTable,
	}, true
}
