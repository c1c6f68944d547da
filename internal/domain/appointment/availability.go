package appointment

import (
	"time"

	"github.com/zhotheone/nailapp/internal/domain/schedule"
	"github.com/zhotheone/nailapp/internal/models"
)

type Slot struct {
	Time   string    `json:"time"`
	At     time.Time `json:"at"`
	Booked bool      `json:"booked"`
}

// Day is the resolved availability of one calendar date.
//
// Working=false means closed (weekend). Configured=false with Working=true is
// a weekday without a template: open, but no hours defined.
type Day struct {
	Date       string `json:"date"`
	Weekday    int    `json:"weekday"`
	Configured bool   `json:"configured"`
	Working    bool   `json:"working"`
	Slots      []Slot `json:"slots"`
}

// ResolveDay combines a weekday template with the instants already taken by
// active appointments. Matching is by exact minute; procedure duration is not
// considered.
func ResolveDay(date time.Time, loc *time.Location, tmpl *models.Schedule, taken []time.Time) Day {
	date = date.In(loc)
	weekday := int(date.Weekday())

	day := Day{
		Date:    date.Format("2006-01-02"),
		Weekday: weekday,
		Slots:   []Slot{},
	}

	if tmpl == nil {
		day.Working = !schedule.DefaultIsWeekend(weekday)
		return day
	}

	day.Configured = true
	if tmpl.IsWeekend {
		return day
	}
	day.Working = true

	takenSet := make(map[int64]struct{}, len(taken))
	for _, t := range taken {
		takenSet[NormalizeTime(t).Unix()] = struct{}{}
	}

	for _, hm := range schedule.SortedTimes(tmpl.TimeTable) {
		h, m, err := schedule.ParseHHMM(hm)
		if err != nil {
			continue
		}
		at := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc)
		_, booked := takenSet[NormalizeTime(at).Unix()]
		day.Slots = append(day.Slots, Slot{Time: hm, At: at, Booked: booked})
	}

	return day
}

// FreeSlots drops booked slots; the booking form only offers the rest.
func FreeSlots(d Day) Day {
	free := make([]Slot, 0, len(d.Slots))
	for _, s := range d.Slots {
		if !s.Booked {
			free = append(free, s)
		}
	}
	d.Slots = free
	return d
}
