package dto

import "github.com/zhotheone/nailapp/internal/models"

type ClientRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	SurName     string `json:"surName" binding:"required,max=100"`
	PhoneNum    string `json:"phoneNum" binding:"required,phone"`
	Instagram   string `json:"instagram" binding:"max=100"`
	TrustRating int    `json:"trustRating" binding:"min=0,max=5"`
}

func (r ClientRequest) Apply(c *models.Client) {
	c.Name = r.Name
	c.SurName = r.SurName
	c.PhoneNum = r.PhoneNum
	c.Instagram = r.Instagram
	c.TrustRating = r.TrustRating
}

type ProcedureRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Price          float64 `json:"price" binding:"gte=0"`
	TimeToComplete int     `json:"timeToComplete" binding:"required,gt=0"`
}

func (r ProcedureRequest) Apply(p *models.Procedure) {
	p.Name = r.Name
	p.Price = r.Price
	p.TimeToComplete = r.TimeToComplete
}

type ScheduleRequest struct {
	DayOfWeek *int             `json:"dayOfWeek" binding:"required,min=0,max=6"`
	IsWeekend bool             `json:"isWeekend"`
	TimeTable models.TimeTable `json:"timeTable" binding:"omitempty,dive,hhmm"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
