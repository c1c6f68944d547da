package appointment

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zhotheone/nailapp/internal/calendar"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/infra/objectstore"
	"github.com/zhotheone/nailapp/internal/timezone"
)

// ======================================================
// VIEWS
// ======================================================

type Calendar struct {
	availability *GetAvailability
	loc          *time.Location
	now          func() time.Time
}

func NewCalendar(availability *GetAvailability, loc *time.Location) *Calendar {
	return &Calendar{
		availability: availability,
		loc:          loc,
		now:          time.Now,
	}
}

func (uc *Calendar) today() string {
	return uc.now().In(uc.loc).Format("2006-01-02")
}

func (uc *Calendar) Month(ctx context.Context, year, month int) (calendar.Month, error) {
	if month < 1 || month > 12 {
		return calendar.Month{}, httperr.ErrValidation("invalid_month", "month must be between 1 and 12")
	}
	if year < 1970 || year > 9999 {
		return calendar.Month{}, httperr.ErrValidation("invalid_year", "year is out of range")
	}

	start, n := calendar.MonthGrid(year, time.Month(month), uc.loc)
	days, err := uc.availability.ResolveRange(ctx, start, n)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.BuildMonth(year, time.Month(month), uc.today(), days), nil
}

// Week returns Monday..Sunday of the week containing date (YYYY-MM-DD, or
// today when empty).
func (uc *Calendar) Week(ctx context.Context, date string) (calendar.Week, error) {
	day := uc.now()
	if date != "" {
		d, err := timezone.ParseDate(date, uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
		}
		day = d
	}

	days, err := uc.availability.ResolveRange(ctx, calendar.WeekStart(day, uc.loc), 7)
	if err != nil {
		return nil, err
	}
	return calendar.BuildWeek(uc.today(), days), nil
}

// ======================================================
// EXPORT
// ======================================================

type Export struct {
	ContentType string
	Filename    string
	// URL is set when the image was uploaded; Data otherwise.
	URL  string
	Data []byte
}

type ExportMonth struct {
	calendar *Calendar
	store    objectstore.Store
}

// NewExportMonth accepts a nil store; exports are then returned inline.
func NewExportMonth(cal *Calendar, store objectstore.Store) *ExportMonth {
	return &ExportMonth{calendar: cal, store: store}
}

func (uc *ExportMonth) Execute(ctx context.Context, year, month int, format string) (*Export, error) {
	if format == "" {
		format = calendar.FormatPNG
	}
	if !calendar.ValidFormat(format) {
		return nil, httperr.ErrValidation("invalid_format", "format must be png or webp")
	}

	m, err := uc.calendar.Month(ctx, year, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, calendar.Render(m), format); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}

	out := &Export{
		ContentType: calendar.ContentType(format),
		Filename:    fmt.Sprintf("calendar-%04d-%02d.%s", year, month, format),
	}

	if uc.store == nil {
		out.Data = buf.Bytes()
		return out, nil
	}

	key := fmt.Sprintf("calendar/%04d/%02d/%s.%s", year, month, uuid.NewString(), format)
	url, err := uc.store.Put(ctx, key, out.ContentType, buf.Bytes())
	if err != nil {
		return nil, err
	}
	out.URL = url
	return out, nil
}
