package appointment

import (
	"context"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/metrics"
	"github.com/zhotheone/nailapp/internal/models"
)

// ChangeStatus moves an appointment through its lifecycle. Reviving a
// cancelled appointment re-checks its slot.
type ChangeStatus struct {
	repo      domain.Repository
	reminders domain.Reminders
	audit     audit.Recorder
}

func NewChangeStatus(
	repo domain.Repository,
	reminders domain.Reminders,
	audit audit.Recorder,
) *ChangeStatus {
	return &ChangeStatus{
		repo:      repo,
		reminders: reminders,
		audit:     audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	id uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.ChangeStatus(ap, to); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		recordConflict(err)
		return nil, err
	}

	metrics.RecordStatusChange(from, ap.Status)
	uc.reminders.Schedule(*ap)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_" + ap.Status,
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}
