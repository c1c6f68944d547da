package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	"github.com/zhotheone/nailapp/internal/timezone"
	ucAppointment "github.com/zhotheone/nailapp/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
	loc          *time.Location
}

func NewAvailabilityHandler(availability *ucAppointment.GetAvailability, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, loc: loc}
}

// Get resolves ?date=YYYY-MM-DD (today when absent). With free=true only open
// slots are returned.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date := timezone.NowIn(h.loc)
	if raw := c.Query("date"); raw != "" {
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD"))
			return
		}
		date = d
	}

	var (
		day domain.Day
		err error
	)
	if c.Query("free") == "true" {
		day, err = h.availability.ResolveFree(c.Request.Context(), date)
	} else {
		day, err = h.availability.Resolve(c.Request.Context(), date)
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, day)
}
