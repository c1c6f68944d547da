package calendar

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
)

func TestMonthGrid_MondayFirstWholeWeeks(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday.
	start, days := MonthGrid(2026, time.March, time.UTC)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2026-02-23", start.Format("2006-01-02"))
	assert.Equal(t, 42, days)

	// February 2027 starts on a Monday and has exactly four weeks.
	start, days = MonthGrid(2027, time.February, time.UTC)
	assert.Equal(t, "2027-02-01", start.Format("2006-01-02"))
	assert.Equal(t, 28, days)
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	sunday := time.Date(2026, 3, 15, 18, 0, 0, 0, loc)

	got := WeekStart(sunday, loc)
	assert.Equal(t, "2026-03-09", got.Format("2006-01-02"))
	assert.Equal(t, 0, got.Hour())
}

func gridDays(t *testing.T, year int, month time.Month) []domain.Day {
	t.Helper()
	start, n := MonthGrid(year, month, time.UTC)

	days := make([]domain.Day, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		wd := int(d.Weekday())
		day := domain.Day{Date: d.Format("2006-01-02"), Weekday: wd, Working: wd != 0 && wd != 6, Slots: []domain.Slot{}}
		if day.Working {
			day.Configured = true
			day.Slots = []domain.Slot{{Time: "10:00"}, {Time: "12:00", Booked: true}}
		}
		days = append(days, day)
	}
	return days
}

func TestBuildMonth(t *testing.T) {
	m := BuildMonth(2026, time.March, "2026-03-10", gridDays(t, 2026, time.March))

	require.Len(t, m.Weeks, 6)
	assert.Equal(t, "March", m.MonthName)

	first := m.Weeks[0][0]
	assert.Equal(t, "2026-02-23", first.Date)
	assert.False(t, first.IsCurrentMonth)

	sunday := m.Weeks[0][6]
	assert.Equal(t, 1, sunday.DayNum)
	assert.True(t, sunday.IsCurrentMonth)
	assert.True(t, sunday.IsWeekend)

	tuesday := m.Weeks[2][1]
	assert.Equal(t, "2026-03-10", tuesday.Date)
	assert.True(t, tuesday.IsToday)
	require.Len(t, tuesday.Slots, 2)
	assert.True(t, tuesday.Slots[1].Booked)
}

func TestRenderAndEncodePNG(t *testing.T) {
	m := BuildMonth(2026, time.March, "2026-03-10", gridDays(t, 2026, time.March))
	img := Render(m)
	require.NotNil(t, img)
	assert.Greater(t, img.Bounds().Dx(), 7*cardWidth)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatPNG))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestEncodeWebPAndUnknown(t *testing.T) {
	img := Render(BuildMonth(2027, time.February, "", gridDays(t, 2027, time.February)))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatWebP))
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))

	assert.Error(t, Encode(&buf, img, "gif"))
	assert.False(t, ValidFormat("gif"))
	assert.Equal(t, "image/webp", ContentType(FormatWebP))
}
