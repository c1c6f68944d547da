package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("client_not_found", "Client not found")
		}
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetProcedure(
	ctx context.Context,
	id uint,
) (*models.Procedure, error) {

	var procedure models.Procedure
	if err := r.db.WithContext(ctx).First(&procedure, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("procedure_not_found", "Procedure not found")
		}
		return nil, err
	}
	return &procedure, nil
}

// --------------------------------------------------
// Appointment (create / update with slot check)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if domain.Status(ap.Status).Active() {
			if err := assertSlotFree(tx, ap.ScheduledAt, 0); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(ap).Error
	})
	return slotError(err)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if domain.Status(ap.Status).Active() {
			if err := assertSlotFree(tx, ap.ScheduledAt, ap.ID); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(ap).Error
	})
	return slotError(err)
}

// assertSlotFree locks the active rows on the same minute. The partial unique
// index catches inserts that race past the lock.
func assertSlotFree(tx *gorm.DB, at time.Time, exceptID uint) error {
	at = at.UTC()

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"scheduled_at >= ? AND scheduled_at < ? AND status <> ?",
			at, at.Add(time.Minute), string(domain.StatusCancelled),
		)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}

	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		return errSlotTaken()
	}
	return nil
}

func errSlotTaken() error {
	return httperr.ErrConflict("slot_taken", "This time slot is already booked")
}

func slotError(err error) error {
	if httperr.IsUniqueViolation(err) {
		return errSlotTaken()
	}
	return err
}

// --------------------------------------------------
// Appointment (read / delete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Procedure").
		First(&ap, id).Error; err != nil {

		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment_not_found", "Appointment not found")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Procedure")

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("scheduled_at < ?", f.To.UTC())
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.ProcedureID != nil {
		q = q.Where("procedure_id = ?", *f.ProcedureID)
	}

	var apps []models.Appointment
	if err := q.
		Order("scheduled_at ASC").
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveStarts(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"scheduled_at >= ? AND scheduled_at < ? AND status <> ?",
			start.UTC(), end.UTC(), string(domain.StatusCancelled),
		).
		Order("scheduled_at ASC").
		Pluck("scheduled_at", &starts).Error; err != nil {
		return nil, err
	}
	return starts, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
