package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/domain/user"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {

		if httperr.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("user_not_found", "User not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// SaveLoginState writes only the lockout bookkeeping columns.
func (r *UserGormRepository) SaveLoginState(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).
		Model(u).
		Select("login_attempts", "lock_until", "last_login").
		Updates(map[string]any{
			"login_attempts": u.LoginAttempts,
			"lock_until":     u.LockUntil,
			"last_login":     u.LastLogin,
		}).Error
}

var _ user.Repository = (*UserGormRepository)(nil)
