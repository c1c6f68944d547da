package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhotheone/nailapp/internal/domain/schedule"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) FindByWeekday(
	ctx context.Context,
	weekday int,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Where("day_of_week = ?", weekday).
		First(&s).Error; err != nil {

		if httperr.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) List(ctx context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := r.db.WithContext(ctx).
		Order("day_of_week ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert relies on the unique weekday index so concurrent upserts of the same
// day collapse into one row.
func (r *ScheduleGormRepository) Upsert(
	ctx context.Context,
	s *models.Schedule,
) error {

	db := r.db.WithContext(ctx)
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_weekend", "time_table", "updated_at"}),
		}).
		Create(s).Error; err != nil {
		return err
	}

	var stored models.Schedule
	if err := db.Where("day_of_week = ?", s.DayOfWeek).First(&stored).Error; err != nil {
		return err
	}
	*s = stored
	return nil
}

func (r *ScheduleGormRepository) Save(
	ctx context.Context,
	s *models.Schedule,
) error {

	err := r.db.WithContext(ctx).Save(s).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("day_already_configured", "Another schedule already exists for this day")
	}
	return err
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)
