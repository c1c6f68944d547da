package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/domain/stats"
	"github.com/zhotheone/nailapp/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) CountProcedures(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Procedure{}).Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) Rows(ctx context.Context) ([]stats.Row, error) {
	var rows []stats.Row
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("client_id, procedure_id, status, scheduled_at, price, final_price").
		Scan(&rows).Error
	return rows, err
}

func (r *StatsGormRepository) ClientNames(ctx context.Context, ids []uint) (map[uint]stats.Name, error) {
	out := make(map[uint]stats.Name, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Select("id, name, sur_name").
		Where("id IN ?", ids).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	for _, c := range clients {
		out[c.ID] = stats.Name{ID: c.ID, Name: c.Name, SurName: c.SurName}
	}
	return out, nil
}

func (r *StatsGormRepository) ProcedureNames(ctx context.Context, ids []uint) (map[uint]stats.Name, error) {
	out := make(map[uint]stats.Name, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var procedures []models.Procedure
	if err := r.db.WithContext(ctx).
		Select("id, name").
		Where("id IN ?", ids).
		Find(&procedures).Error; err != nil {
		return nil, err
	}
	for _, p := range procedures {
		out[p.ID] = stats.Name{ID: p.ID, Name: p.Name}
	}
	return out, nil
}

var _ stats.Repository = (*StatsGormRepository)(nil)
