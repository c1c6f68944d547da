package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhotheone/nailapp/internal/models"
)

var kyiv = time.FixedZone("EET", 2*3600)

// 2026-03-09 is a Monday.
var monday = time.Date(2026, 3, 9, 0, 0, 0, 0, kyiv)

func mondayTemplate() *models.Schedule {
	return &models.Schedule{DayOfWeek: 1, TimeTable: models.TimeTable{1: "09:00", 2: "11:00"}}
}

func times(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestResolveDayReturnsTemplateSlotsSorted(t *testing.T) {
	tmpl := &models.Schedule{DayOfWeek: 1, TimeTable: models.TimeTable{1: "11:00", 2: "09:00"}}

	day := ResolveDay(monday, kyiv, tmpl, nil)

	assert.True(t, day.Working)
	assert.True(t, day.Configured)
	assert.Equal(t, 1, day.Weekday)
	assert.Equal(t, []string{"09:00", "11:00"}, times(day.Slots))
	assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, kyiv), day.Slots[0].At)
}

func TestResolveDayMarksBookedSlot(t *testing.T) {
	booked := time.Date(2026, 3, 9, 9, 0, 0, 0, kyiv).UTC()

	day := ResolveDay(monday, kyiv, mondayTemplate(), []time.Time{booked})

	require.Len(t, day.Slots, 2)
	assert.True(t, day.Slots[0].Booked)
	assert.False(t, day.Slots[1].Booked)
	assert.Equal(t, []string{"11:00"}, times(FreeSlots(day).Slots))
}

func TestResolveDayIgnoresOffMinuteAppointments(t *testing.T) {
	// 09:30 sits inside no template slot and must not block 09:00.
	taken := []time.Time{time.Date(2026, 3, 9, 9, 30, 0, 0, kyiv)}

	day := ResolveDay(monday, kyiv, mondayTemplate(), taken)

	assert.Equal(t, []string{"09:00", "11:00"}, times(FreeSlots(day).Slots))
}

func TestResolveDayIgnoresOtherDates(t *testing.T) {
	taken := []time.Time{time.Date(2026, 3, 16, 9, 0, 0, 0, kyiv)}

	day := ResolveDay(monday, kyiv, mondayTemplate(), taken)

	assert.Len(t, FreeSlots(day).Slots, 2)
}

func TestResolveDayWeekendTemplateIsClosed(t *testing.T) {
	tmpl := &models.Schedule{DayOfWeek: 1, IsWeekend: true, TimeTable: models.TimeTable{1: "09:00"}}

	day := ResolveDay(monday, kyiv, tmpl, nil)

	assert.False(t, day.Working)
	assert.True(t, day.Configured)
	assert.Empty(t, day.Slots)
}

func TestResolveDayWithoutTemplateUsesHeuristic(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)
	saturday := monday.AddDate(0, 0, -2)

	weekday := ResolveDay(monday, kyiv, nil, nil)
	assert.True(t, weekday.Working)
	assert.False(t, weekday.Configured)
	assert.Empty(t, weekday.Slots)
	assert.NotNil(t, weekday.Slots)

	for _, d := range []time.Time{saturday, sunday} {
		day := ResolveDay(d, kyiv, nil, nil)
		assert.False(t, day.Working, d.Weekday().String())
		assert.Empty(t, day.Slots)
	}
}

func TestResolveDayUsesSalonLocationForWeekday(t *testing.T) {
	// 23:30 UTC on Sunday is already Monday in Kyiv.
	instant := time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC)

	day := ResolveDay(instant, kyiv, mondayTemplate(), nil)

	assert.Equal(t, 1, day.Weekday)
	assert.Equal(t, "2026-03-09", day.Date)
}
