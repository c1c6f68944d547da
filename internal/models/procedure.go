package models

import "time"

type Procedure struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`

	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// Minutes.
	TimeToComplete int `gorm:"not null" json:"timeToComplete"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
