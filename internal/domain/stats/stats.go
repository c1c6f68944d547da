package stats

import (
	"context"
	"sort"
	"time"
)

// TopN bounds the popular-procedure and frequent-client lists.
const TopN = 5

// Row is the slice of an appointment the reports need.
type Row struct {
	ClientID    uint
	ProcedureID uint
	Status      string
	ScheduledAt time.Time
	Price       float64
	FinalPrice  *float64
}

type Name struct {
	ID      uint
	Name    string
	SurName string
}

type Repository interface {
	CountClients(ctx context.Context) (int64, error)
	CountProcedures(ctx context.Context) (int64, error)
	Rows(ctx context.Context) ([]Row, error)
	// ClientNames and ProcedureNames skip ids that no longer exist.
	ClientNames(ctx context.Context, ids []uint) (map[uint]Name, error)
	ProcedureNames(ctx context.Context, ids []uint) (map[uint]Name, error)
}

// ===============================
// Report shapes
// ===============================

type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type Revenue struct {
	Total float64 `json:"total"`
}

type PopularProcedure struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type FrequentClient struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	SurName string `json:"surName"`
	Count   int    `json:"count"`
}

type Summary struct {
	TotalClients      int64              `json:"totalClients"`
	TotalProcedures   int64              `json:"totalProcedures"`
	Appointments      StatusCounts       `json:"appointments"`
	Revenue           Revenue            `json:"revenue"`
	PopularProcedures []PopularProcedure `json:"popularProcedures"`
	FrequentClients   []FrequentClient   `json:"frequentClients"`
}

type MonthRevenue struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalRevenue float64 `json:"totalRevenue"`
	Count        int     `json:"count"`
}

type ClientRetention struct {
	ClientID         uint   `json:"clientId"`
	Name             string `json:"name"`
	SurName          string `json:"surName"`
	AppointmentCount int    `json:"appointmentCount"`
}

// ===============================
// Aggregation
// ===============================

// Earned is what a completed appointment brought in.
func Earned(r Row) float64 {
	if r.FinalPrice != nil {
		return *r.FinalPrice
	}
	return r.Price
}

func CountStatuses(rows []Row) (StatusCounts, Revenue) {
	var sc StatusCounts
	var rev Revenue
	for _, r := range rows {
		sc.Total++
		switch r.Status {
		case "pending":
			sc.Pending++
		case "confirmed":
			sc.Confirmed++
		case "completed":
			sc.Completed++
			rev.Total += Earned(r)
		case "cancelled":
			sc.Cancelled++
		}
	}
	return sc, rev
}

type Tally struct {
	ID    uint
	Count int
}

// Top counts rows per key and returns the n largest, ties broken by id.
func Top(rows []Row, key func(Row) uint, n int) []Tally {
	counts := make(map[uint]int)
	for _, r := range rows {
		counts[key(r)]++
	}

	out := make([]Tally, 0, len(counts))
	for id, c := range counts {
		out = append(out, Tally{ID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func ByClient(r Row) uint    { return r.ClientID }
func ByProcedure(r Row) uint { return r.ProcedureID }

// Monthly groups completed appointments by calendar month in loc.
func Monthly(rows []Row, loc *time.Location) []MonthRevenue {
	type ym struct{ y, m int }
	buckets := make(map[ym]*MonthRevenue)

	for _, r := range rows {
		if r.Status != "completed" {
			continue
		}
		t := r.ScheduledAt.In(loc)
		k := ym{t.Year(), int(t.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &MonthRevenue{Year: k.y, Month: k.m}
			buckets[k] = b
		}
		b.TotalRevenue += Earned(r)
		b.Count++
	}

	out := make([]MonthRevenue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

func IDs(ts []Tally) []uint {
	out := make([]uint, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
