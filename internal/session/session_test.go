package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhotheone/nailapp/internal/cache"
)

func newTestManager(now *time.Time) *Manager {
	m := NewManager(cache.NewMemory(), "test-secret", 24*time.Hour, time.Hour)
	m.now = func() time.Time { return *now }
	return m
}

func TestCreateResolveDestroy(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	ctx := context.Background()

	token, s, err := m.Create(ctx, 7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, refreshed, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, refreshed)
	assert.Equal(t, s.ID, got.ID)
	assert.EqualValues(t, 7, got.UserID)

	gone, err := m.Destroy(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, gone)
	assert.EqualValues(t, 7, gone.UserID)

	_, _, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	gone, err = m.Destroy(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestResolve_TouchesLazily(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	ctx := context.Background()

	token, _, err := m.Create(ctx, 1, "admin")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, refreshed, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, refreshed, "too early to touch")

	now = now.Add(31 * time.Minute)
	s, refreshed, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed)
	assert.WithinDuration(t, now, s.LastSeen, time.Second)

	// the refreshed token names the same session
	again, _, err := m.Resolve(ctx, refreshed)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestResolve_RejectsForeignToken(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	other := NewManager(cache.NewMemory(), "other-secret", time.Hour, time.Hour)
	ctx := context.Background()

	token, _, err := other.Create(ctx, 1, "admin")
	require.NoError(t, err)

	_, _, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, _, err = m.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolve_ExpiredToken(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	ctx := context.Background()

	token, _, err := m.Create(ctx, 1, "admin")
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	_, _, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
