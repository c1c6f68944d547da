package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// No FK constraint: deleting a procedure leaves a dangling reference and
	// client deletion cascades in the client use case.
	ClientID uint    `gorm:"index;not null" json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"-"`

	ProcedureID uint       `gorm:"index;not null" json:"procedureId"`
	Procedure   *Procedure `gorm:"foreignKey:ProcedureID" json:"-"`

	// Stored in UTC, truncated to the minute.
	ScheduledAt time.Time `gorm:"not null;index" json:"time"`

	Price      float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	FinalPrice *float64 `gorm:"type:decimal(10,2)" json:"finalPrice,omitempty"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:1000" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
