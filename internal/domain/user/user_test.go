package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhotheone/nailapp/internal/models"
)

func TestFifthFailureLocksForAnHour(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	u := &models.User{}

	for i := 0; i < MaxLoginAttempts-1; i++ {
		RegisterFailure(u, now)
		assert.Nil(t, u.LockUntil)
	}
	RegisterFailure(u, now)

	require.NotNil(t, u.LockUntil)
	assert.Equal(t, now.Add(time.Hour), *u.LockUntil)
	assert.True(t, u.IsLocked(now.Add(59*time.Minute)))
	assert.False(t, u.IsLocked(now.Add(61*time.Minute)))
}

func TestFailureAfterExpiredLockRestartsCount(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	u := &models.User{LoginAttempts: 5, LockUntil: &expired}

	RegisterFailure(u, now)

	assert.Equal(t, 1, u.LoginAttempts)
	assert.Nil(t, u.LockUntil)
}

func TestRegisterSuccessResets(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	until := now.Add(time.Hour)
	u := &models.User{LoginAttempts: 3, LockUntil: &until}

	RegisterSuccess(u, now)

	assert.Zero(t, u.LoginAttempts)
	assert.Nil(t, u.LockUntil)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, now, *u.LastLogin)
}

func TestMinutesLeftRoundsUp(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	until := now.Add(90 * time.Second)
	u := &models.User{LockUntil: &until}

	assert.Equal(t, 2, MinutesLeft(u, now))
	assert.Equal(t, 0, MinutesLeft(u, now.Add(time.Hour)))
	assert.Equal(t, 0, MinutesLeft(&models.User{}, now))
}
