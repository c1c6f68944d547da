package appointment

import (
	"context"
	"time"

	"github.com/zhotheone/nailapp/internal/models"
)

type ListFilter struct {
	Status      *Status
	From        *time.Time
	To          *time.Time
	ClientID    *uint
	ProcedureID *uint
}

type Repository interface {
	// -------- References --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetProcedure(ctx context.Context, id uint) (*models.Procedure, error)

	// -------- Appointment --------

	// CreateAppointment inserts ap, failing with a ConflictError when ap is
	// active and another active appointment holds the same minute.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	// UpdateAppointment saves ap with the same slot rule as CreateAppointment.
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id uint) error
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	// -------- Availability --------

	// ListActiveStarts returns start instants of non-cancelled appointments
	// in [start, end).
	ListActiveStarts(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// Reminders is told about every appointment whose status or time may have
// changed so it can keep one reminder per confirmed appointment.
type Reminders interface {
	Schedule(ap models.Appointment)
	Cancel(appointmentID uint)
}
