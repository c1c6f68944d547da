// Package calendar lays availability out as Monday-first week grids and
// renders the month view to an image.
package calendar

import (
	"time"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
)

type Slot struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

type DayCell struct {
	Date           string `json:"date"`
	DayNum         int    `json:"dayNum"`
	DayOfWeek      int    `json:"dayOfWeek"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsToday        bool   `json:"isToday"`
	IsWeekend      bool   `json:"isWeekend"`
	Slots          []Slot `json:"slots"`
}

type Week []DayCell

type Month struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Weeks     []Week `json:"weeks"`
}

// MondayIndex maps Sunday=0..Saturday=6 onto Monday=0..Sunday=6.
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// WeekStart is the Monday on or before t, at local midnight.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -MondayIndex(day.Weekday()))
}

// MonthGrid returns the first grid day and the number of grid days for the
// month: whole weeks covering the 1st through the last day.
func MonthGrid(year int, month time.Month, loc *time.Location) (time.Time, int) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -MondayIndex(first.Weekday()))
	end := last.AddDate(0, 0, 6-MondayIndex(last.Weekday()))

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return start, days
}

// BuildMonth groups resolved days (starting at the MonthGrid start) into
// weeks. Weekend means the day is closed: a weekend template, or Saturday and
// Sunday when no template exists.
func BuildMonth(year int, month time.Month, today string, days []domain.Day) Month {
	m := Month{
		Year:      year,
		Month:     int(month),
		MonthName: month.String(),
		Weeks:     make([]Week, 0, len(days)/7),
	}

	var week Week
	for _, d := range days {
		week = append(week, cell(d, month, today))
		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

func BuildWeek(today string, days []domain.Day) Week {
	w := make(Week, 0, len(days))
	for _, d := range days {
		c := cell(d, 0, today)
		c.IsCurrentMonth = true
		w = append(w, c)
	}
	return w
}

func cell(d domain.Day, month time.Month, today string) DayCell {
	date, _ := time.Parse("2006-01-02", d.Date)

	c := DayCell{
		Date:           d.Date,
		DayNum:         date.Day(),
		DayOfWeek:      d.Weekday,
		IsCurrentMonth: date.Month() == month,
		IsToday:        d.Date == today,
		IsWeekend:      !d.Working,
		Slots:          make([]Slot, 0, len(d.Slots)),
	}
	for _, s := range d.Slots {
		c.Slots = append(c.Slots, Slot{Time: s.Time, Booked: s.Booked})
	}
	return c
}
