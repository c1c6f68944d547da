package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zhotheone/nailapp/internal/dto"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/httpresp"
	ucAppointment "github.com/zhotheone/nailapp/internal/usecase/appointment"
	"github.com/zhotheone/nailapp/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	get          *ucAppointment.GetAppointment
	update       *ucAppointment.UpdateAppointment
	changeStatus *ucAppointment.ChangeStatus
	remove       *ucAppointment.DeleteAppointment
	list         *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	get *ucAppointment.GetAppointment,
	update *ucAppointment.UpdateAppointment,
	changeStatus *ucAppointment.ChangeStatus,
	remove *ucAppointment.DeleteAppointment,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		get:          get,
		update:       update,
		changeStatus: changeStatus,
		remove:       remove,
		list:         list,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	clientID, err := queryUint(c, "clientId")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	procedureID, err := queryUint(c, "procedureId")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Status:      c.Query("status"),
		Date:        c.Query("date"),
		ClientID:    clientID,
		ProcedureID: procedureID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentViews(apps))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    uint(req.ClientID),
		ProcedureID: uint(req.ProcedureID),
		Time:        *req.Time,
		Price:       req.Price,
		FinalPrice:  req.FinalPrice,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentView(*ap))
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentView(*ap))
}

// ======================================================
// UPDATE (PUT and PATCH)
// ======================================================

// Update applies the fields present in the body. A body carrying only a
// status goes through the status transition path.
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	ctx := c.Request.Context()

	if req.StatusOnly() {
		ap, err := h.changeStatus.Execute(ctx, id, *req.Status)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, dto.NewAppointmentView(*ap))
		return
	}

	patch, err := req.Patch()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.update.Execute(ctx, id, patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentView(*ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment deleted"})
}
