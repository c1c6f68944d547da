package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/timezone"
	ucAppointment "github.com/zhotheone/nailapp/internal/usecase/appointment"
)

type CalendarHandler struct {
	calendar *ucAppointment.Calendar
	export   *ucAppointment.ExportMonth
	loc      *time.Location
}

func NewCalendarHandler(
	calendar *ucAppointment.Calendar,
	export *ucAppointment.ExportMonth,
	loc *time.Location,
) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, export: export, loc: loc}
}

// yearMonth defaults to the current month in the salon timezone.
func (h *CalendarHandler) yearMonth(c *gin.Context) (int, int, error) {
	now := timezone.NowIn(h.loc)
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func (h *CalendarHandler) Month(c *gin.Context) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	m, err := h.calendar.Month(c.Request.Context(), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *CalendarHandler) Week(c *gin.Context) {
	w, err := h.calendar.Week(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, w)
}

// Export answers with the upload URL when object storage is configured and
// with the image itself otherwise.
func (h *CalendarHandler) Export(c *gin.Context) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.export.Execute(c.Request.Context(), year, month, c.Query("format"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if out.URL != "" {
		httpresp.OK(c, gin.H{"url": out.URL, "filename": out.Filename})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Data)
}
