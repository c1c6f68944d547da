package appointment

import (
	"context"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/metrics"
	"github.com/zhotheone/nailapp/internal/models"
)

type UpdateAppointment struct {
	repo      domain.Repository
	reminders domain.Reminders
	audit     audit.Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	reminders domain.Reminders,
	audit audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:      repo,
		reminders: reminders,
		audit:     audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	patch domain.Patch,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *ap

	// --------------------------------------------------
	// Changed references must exist
	// --------------------------------------------------
	if patch.ClientID != nil && *patch.ClientID != ap.ClientID {
		client, err := uc.repo.GetClient(ctx, *patch.ClientID)
		if err != nil {
			return nil, err
		}
		ap.Client = client
	}

	if patch.ProcedureID != nil && *patch.ProcedureID != ap.ProcedureID {
		procedure, err := uc.repo.GetProcedure(ctx, *patch.ProcedureID)
		if err != nil {
			return nil, err
		}
		ap.Procedure = procedure
	}

	if err := domain.Apply(ap, patch); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		recordConflict(err)
		return nil, err
	}

	if before.Status != ap.Status {
		metrics.RecordStatusChange(before.Status, ap.Status)
	}
	// the reminder carries time, client and procedure, so any of them re-arms it
	if before.Status != ap.Status ||
		!before.ScheduledAt.Equal(ap.ScheduledAt) ||
		before.ClientID != ap.ClientID ||
		before.ProcedureID != ap.ProcedureID {
		uc.reminders.Schedule(*ap)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"from_status": before.Status,
			"to_status":   ap.Status,
			"time":        ap.ScheduledAt,
		},
	})

	return ap, nil
}
