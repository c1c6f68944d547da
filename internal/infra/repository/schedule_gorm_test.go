package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhotheone/nailapp/internal/db/dbtest"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

func TestScheduleUpsert_OverwritesSameWeekday(t *testing.T) {
	repo := NewScheduleGormRepository(dbtest.New(t))
	ctx := context.Background()

	first := &models.Schedule{DayOfWeek: 2, TimeTable: models.TimeTable{0: "10:00", 1: "12:00"}}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &models.Schedule{DayOfWeek: 2, TimeTable: models.TimeTable{0: "09:00"}}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.TimeTable{0: "09:00"}, all[0].TimeTable)
}

func TestScheduleFind_MissingReturnsNil(t *testing.T) {
	repo := NewScheduleGormRepository(dbtest.New(t))
	ctx := context.Background()

	s, err := repo.FindByWeekday(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestScheduleSave_MovingOntoTakenWeekdayConflicts(t *testing.T) {
	repo := NewScheduleGormRepository(dbtest.New(t))
	ctx := context.Background()

	mon := &models.Schedule{DayOfWeek: 1, TimeTable: models.TimeTable{0: "10:00"}}
	tue := &models.Schedule{DayOfWeek: 2, TimeTable: models.TimeTable{0: "11:00"}}
	require.NoError(t, repo.Upsert(ctx, mon))
	require.NoError(t, repo.Upsert(ctx, tue))

	tue.DayOfWeek = 1
	err := repo.Save(ctx, tue)
	assert.True(t, httperr.Is(err, "day_already_configured"))
}
