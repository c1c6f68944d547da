package appointment

import (
	"time"

	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Patch lists the independently updatable fields; nil means unchanged.
// ClearFinalPrice removes a previously set final price.
type Patch struct {
	ClientID        *uint
	ProcedureID     *uint
	Time            *time.Time
	Price           *float64
	FinalPrice      *float64
	ClearFinalPrice bool
	Status          *Status
	Notes           *string
}

// SlotChanged reports whether applying p can move the appointment onto a
// slot it did not occupy before.
func (p Patch) SlotChanged() bool {
	return p.Time != nil || p.Status != nil
}

func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

func ValidatePrice(field string, v float64) error {
	if v < 0 {
		return httperr.ErrValidation("invalid_"+field, field+" must not be negative")
	}
	return nil
}

func ChangeStatus(ap *models.Appointment, to Status) error {
	if !CanTransition(Status(ap.Status), to) {
		return httperr.ErrValidation("invalid_transition", "status change from "+ap.Status+" to "+string(to)+" is not allowed")
	}
	ap.Status = string(to)
	return nil
}

// Apply validates p and writes it onto ap.
func Apply(ap *models.Appointment, p Patch) error {
	if p.Price != nil {
		if err := ValidatePrice("price", *p.Price); err != nil {
			return err
		}
	}
	if p.FinalPrice != nil {
		if err := ValidatePrice("finalPrice", *p.FinalPrice); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := ChangeStatus(ap, *p.Status); err != nil {
			return err
		}
	}

	if p.ClientID != nil {
		ap.ClientID = *p.ClientID
	}
	if p.ProcedureID != nil {
		ap.ProcedureID = *p.ProcedureID
	}
	if p.Time != nil {
		ap.ScheduledAt = NormalizeTime(*p.Time)
	}
	if p.Price != nil {
		ap.Price = *p.Price
	}
	if p.ClearFinalPrice {
		ap.FinalPrice = nil
	}
	if p.FinalPrice != nil {
		v := *p.FinalPrice
		ap.FinalPrice = &v
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	return nil
}
