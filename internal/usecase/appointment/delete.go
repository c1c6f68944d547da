package appointment

import (
	"context"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo      domain.Repository
	reminders domain.Reminders
	audit     audit.Recorder
}

func NewDeleteAppointment(
	repo domain.Repository,
	reminders domain.Reminders,
	audit audit.Recorder,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:      repo,
		reminders: reminders,
		audit:     audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.reminders.Cancel(id)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: audit.Ptr(id),
	})
	return nil
}
