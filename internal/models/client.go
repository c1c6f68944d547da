package models

import "time"

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	SurName     string `gorm:"size:100;not null" json:"surName"`
	PhoneNum    string `gorm:"size:20;not null" json:"phoneNum"`
	Instagram   string `gorm:"size:100" json:"instagram,omitempty"`
	TrustRating int    `gorm:"not null;default:0" json:"trustRating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
