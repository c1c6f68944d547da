package dto

import (
	"time"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/models"
)

// ===============================
// Responses
// ===============================

type AppointmentView struct {
	ID         uint                  `json:"id"`
	Client     Ref[models.Client]    `json:"clientId"`
	Procedure  Ref[models.Procedure] `json:"procedureId"`
	Time       time.Time             `json:"time"`
	Price      float64               `json:"price"`
	FinalPrice *float64              `json:"finalPrice,omitempty"`
	Status     string                `json:"status"`
	Notes      string                `json:"notes,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

func NewAppointmentView(ap models.Appointment) AppointmentView {
	return AppointmentView{
		ID:         ap.ID,
		Client:     RefOf(ap.ClientID, ap.Client),
		Procedure:  RefOf(ap.ProcedureID, ap.Procedure),
		Time:       ap.ScheduledAt,
		Price:      ap.Price,
		FinalPrice: ap.FinalPrice,
		Status:     ap.Status,
		Notes:      ap.Notes,
		CreatedAt:  ap.CreatedAt,
		UpdatedAt:  ap.UpdatedAt,
	}
}

func NewAppointmentViews(apps []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointmentView(ap))
	}
	return out
}

// ===============================
// Requests
// ===============================

type CreateAppointmentRequest struct {
	ClientID    ID         `json:"clientId" binding:"required"`
	ProcedureID ID         `json:"procedureId" binding:"required"`
	Time        *time.Time `json:"time" binding:"required"`
	Price       *float64   `json:"price"`
	FinalPrice  *float64   `json:"finalPrice"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes" binding:"max=1000"`
}

// UpdateAppointmentRequest backs both PUT and PATCH; absent fields are left
// alone and "finalPrice": null clears the final price.
type UpdateAppointmentRequest struct {
	ClientID    *ID           `json:"clientId"`
	ProcedureID *ID           `json:"procedureId"`
	Time        *time.Time    `json:"time"`
	Price       *float64      `json:"price"`
	FinalPrice  OptionalFloat `json:"finalPrice"`
	Status      *string       `json:"status"`
	Notes       *string       `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateAppointmentRequest) Patch() (domain.Patch, error) {
	p := domain.Patch{
		ClientID:    r.ClientID.Ptr(),
		ProcedureID: r.ProcedureID.Ptr(),
		Time:        r.Time,
		Price:       r.Price,
		Notes:       r.Notes,
	}

	if r.FinalPrice.Set {
		if r.FinalPrice.Value == nil {
			p.ClearFinalPrice = true
		} else {
			p.FinalPrice = r.FinalPrice.Value
		}
	}

	if r.Status != nil {
		st, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return domain.Patch{}, err
		}
		p.Status = &st
	}
	return p, nil
}

// StatusOnly reports whether the body names a status and nothing else.
func (r UpdateAppointmentRequest) StatusOnly() bool {
	return r.Status != nil &&
		r.ClientID == nil && r.ProcedureID == nil && r.Time == nil &&
		r.Price == nil && !r.FinalPrice.Set && r.Notes == nil
}
