package appointment

import (
	"context"
	"time"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/timezone"
)

type ListAppointmentsInput struct {
	Status string
	// Date is YYYY-MM-DD in the salon timezone.
	Date        string
	ClientID    *uint
	ProcedureID *uint
}

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(repo domain.Repository, loc *time.Location) *ListAppointments {
	return &ListAppointments{repo: repo, loc: loc}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	f := domain.ListFilter{
		ClientID:    in.ClientID,
		ProcedureID: in.ProcedureID,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	if in.Date != "" {
		day, err := timezone.ParseDate(in.Date, uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
		}
		start, end := timezone.DayBounds(day, uc.loc)
		f.From, f.To = &start, &end
	}

	return uc.repo.ListAppointments(ctx, f)
}
