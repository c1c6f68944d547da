package models

import "time"

// TimeTable maps a slot index to an "HH:MM" time of day.
type TimeTable map[int]string

type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// 0 = Sunday .. 6 = Saturday.
	DayOfWeek int       `gorm:"not null;uniqueIndex" json:"dayOfWeek"`
	IsWeekend bool      `gorm:"not null;default:false" json:"isWeekend"`
	TimeTable TimeTable `gorm:"type:text;serializer:json" json:"timeTable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
