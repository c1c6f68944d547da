package appointment

import (
	"context"
	"time"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/metrics"
	"github.com/zhotheone/nailapp/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    uint
	ProcedureID uint
	Time        time.Time

	// Price defaults to the procedure price when nil.
	Price      *float64
	FinalPrice *float64
	Status     string
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	reminders domain.Reminders
	audit     audit.Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	reminders domain.Reminders,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		reminders: reminders,
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	if in.Time.IsZero() {
		return nil, httperr.ErrValidation("invalid_time", "time is required")
	}

	// --------------------------------------------------
	// References
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	procedure, err := uc.repo.GetProcedure(ctx, in.ProcedureID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Prices
	// --------------------------------------------------
	price := procedure.Price
	if in.Price != nil {
		price = *in.Price
	}
	if err := domain.ValidatePrice("price", price); err != nil {
		return nil, err
	}
	if in.FinalPrice != nil {
		if err := domain.ValidatePrice("finalPrice", *in.FinalPrice); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Persist (slot check happens inside the write)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    client.ID,
		ProcedureID: procedure.ID,
		ScheduledAt: domain.NormalizeTime(in.Time),
		Price:       price,
		FinalPrice:  in.FinalPrice,
		Status:      string(status),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		recordConflict(err)
		return nil, err
	}

	ap.Client = client
	ap.Procedure = procedure

	uc.reminders.Schedule(*ap)
	metrics.RecordAppointmentCreated(ap.Status)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"time":   ap.ScheduledAt,
			"status": ap.Status,
		},
	})

	return ap, nil
}

func recordConflict(err error) {
	if httperr.Is(err, "slot_taken") {
		metrics.RecordSlotConflict()
	}
}
