package user

import (
	"context"
	"math"
	"time"

	"github.com/zhotheone/nailapp/internal/models"
)

const (
	MaxLoginAttempts = 5
	LockDuration     = time.Hour
)

type Repository interface {
	// FindByUsername returns nil, nil for unknown usernames.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Create(ctx context.Context, u *models.User) error
	SaveLoginState(ctx context.Context, u *models.User) error
}

// RegisterFailure counts a bad password. An expired lock starts a fresh count;
// reaching MaxLoginAttempts locks the account for LockDuration.
func RegisterFailure(u *models.User, now time.Time) {
	if u.LockUntil != nil && !u.LockUntil.After(now) {
		u.LoginAttempts = 1
		u.LockUntil = nil
		return
	}

	u.LoginAttempts++
	if u.LoginAttempts >= MaxLoginAttempts && u.LockUntil == nil {
		until := now.Add(LockDuration)
		u.LockUntil = &until
	}
}

func RegisterSuccess(u *models.User, now time.Time) {
	u.LoginAttempts = 0
	u.LockUntil = nil
	u.LastLogin = &now
}

// MinutesLeft rounds the remaining lock time up to whole minutes.
func MinutesLeft(u *models.User, now time.Time) int {
	if u.LockUntil == nil {
		return 0
	}
	left := u.LockUntil.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Minutes()))
}
