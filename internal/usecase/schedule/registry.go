package schedule

import (
	"context"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/schedule"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type TemplateInput struct {
	DayOfWeek int
	IsWeekend bool
	TimeTable models.TimeTable
}

// ======================================================
// USE CASE
// ======================================================

// Registry stores one working template per weekday.
type Registry struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewRegistry(repo domain.Repository, audit audit.Recorder) *Registry {
	return &Registry{repo: repo, audit: audit}
}

// GetForWeekday returns nil, nil for a weekday without a template.
func (uc *Registry) GetForWeekday(ctx context.Context, weekday int) (*models.Schedule, error) {
	if err := domain.ValidateWeekday(weekday); err != nil {
		return nil, err
	}
	return uc.repo.FindByWeekday(ctx, weekday)
}

func (uc *Registry) List(ctx context.Context) ([]models.Schedule, error) {
	return uc.repo.List(ctx)
}

// Upsert creates the weekday's template or fully replaces the existing one.
func (uc *Registry) Upsert(ctx context.Context, in TemplateInput) (*models.Schedule, error) {
	tt, err := domain.Normalize(in.DayOfWeek, in.IsWeekend, in.TimeTable)
	if err != nil {
		return nil, err
	}

	s := &models.Schedule{
		DayOfWeek: in.DayOfWeek,
		IsWeekend: in.IsWeekend,
		TimeTable: tt,
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}

	uc.record(ctx, "schedule_upserted", s)
	return s, nil
}

// Replace overwrites the template with the given id. Moving it onto a weekday
// that already has a template conflicts.
func (uc *Registry) Replace(ctx context.Context, id uint, in TemplateInput) (*models.Schedule, error) {
	tt, err := domain.Normalize(in.DayOfWeek, in.IsWeekend, in.TimeTable)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, httperr.ErrNotFound("schedule_not_found", "Schedule not found")
	}

	s.DayOfWeek = in.DayOfWeek
	s.IsWeekend = in.IsWeekend
	s.TimeTable = tt

	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}

	uc.record(ctx, "schedule_replaced", s)
	return s, nil
}

func (uc *Registry) record(ctx context.Context, action string, s *models.Schedule) {
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   action,
		Entity:   "schedule",
		EntityID: audit.Ptr(s.ID),
		Metadata: map[string]any{
			"dayOfWeek": s.DayOfWeek,
			"isWeekend": s.IsWeekend,
			"slots":     len(s.TimeTable),
		},
	})
}
