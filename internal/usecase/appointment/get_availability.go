package appointment

import (
	"context"
	"time"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/domain/schedule"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/timezone"
)

type GetAvailability struct {
	schedules schedule.Repository
	repo      domain.Repository
	loc       *time.Location
}

func NewGetAvailability(
	schedules schedule.Repository,
	repo domain.Repository,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{
		schedules: schedules,
		repo:      repo,
		loc:       loc,
	}
}

// Resolve returns every slot of the day with its booked flag.
func (uc *GetAvailability) Resolve(ctx context.Context, date time.Time) (domain.Day, error) {
	start, end := timezone.DayBounds(date, uc.loc)

	tmpl, err := uc.schedules.FindByWeekday(ctx, int(start.Weekday()))
	if err != nil {
		return domain.Day{}, err
	}

	taken, err := uc.repo.ListActiveStarts(ctx, start, end)
	if err != nil {
		return domain.Day{}, err
	}

	return domain.ResolveDay(start, uc.loc, tmpl, taken), nil
}

// ResolveFree returns only the slots still open for booking.
func (uc *GetAvailability) ResolveFree(ctx context.Context, date time.Time) (domain.Day, error) {
	day, err := uc.Resolve(ctx, date)
	if err != nil {
		return domain.Day{}, err
	}
	return domain.FreeSlots(day), nil
}

// ResolveRange resolves consecutive days starting at from with two queries in
// total, for calendar views.
func (uc *GetAvailability) ResolveRange(
	ctx context.Context,
	from time.Time,
	days int,
) ([]domain.Day, error) {

	start, _ := timezone.DayBounds(from, uc.loc)
	end := start.AddDate(0, 0, days)

	templates, err := uc.schedules.List(ctx)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]*models.Schedule, len(templates))
	for i := range templates {
		byWeekday[templates[i].DayOfWeek] = &templates[i]
	}

	taken, err := uc.repo.ListActiveStarts(ctx, start, end)
	if err != nil {
		return nil, err
	}
	takenByDay := make(map[string][]time.Time)
	for _, t := range taken {
		k := t.In(uc.loc).Format("2006-01-02")
		takenByDay[k] = append(takenByDay[k], t)
	}

	out := make([]domain.Day, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out, domain.ResolveDay(
			d, uc.loc,
			byWeekday[int(d.Weekday())],
			takenByDay[d.Format("2006-01-02")],
		))
	}
	return out, nil
}
