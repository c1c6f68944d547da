package stats

import (
	"context"
	"log"
	"time"

	"github.com/zhotheone/nailapp/internal/cache"
	domain "github.com/zhotheone/nailapp/internal/domain/stats"
	"github.com/zhotheone/nailapp/internal/metrics"
)

const (
	KeySummary         = "stats:summary"
	KeyMonthlyRevenue  = "stats:monthly-revenue"
	KeyClientRetention = "stats:client-retention"
)

// Keys lists every cached report; Invalidate drops them all.
var Keys = []string{KeySummary, KeyMonthlyRevenue, KeyClientRetention}

// ======================================================
// USE CASE
// ======================================================

type Reports struct {
	repo  domain.Repository
	cache cache.Cache
	ttl   time.Duration
	loc   *time.Location
}

func NewReports(repo domain.Repository, c cache.Cache, ttl time.Duration, loc *time.Location) *Reports {
	return &Reports{repo: repo, cache: c, ttl: ttl, loc: loc}
}

func (uc *Reports) Summary(ctx context.Context) (*domain.Summary, error) {
	return cached(ctx, uc, KeySummary, uc.summary)
}

func (uc *Reports) MonthlyRevenue(ctx context.Context) ([]domain.MonthRevenue, error) {
	return cached(ctx, uc, KeyMonthlyRevenue, func(ctx context.Context) ([]domain.MonthRevenue, error) {
		rows, err := uc.repo.Rows(ctx)
		if err != nil {
			return nil, err
		}
		return domain.Monthly(rows, uc.loc), nil
	})
}

func (uc *Reports) ClientRetention(ctx context.Context) ([]domain.ClientRetention, error) {
	return cached(ctx, uc, KeyClientRetention, uc.retention)
}

// Invalidate drops every cached report. Cache failures are logged only; the
// reports expire on their own.
func (uc *Reports) Invalidate(ctx context.Context) {
	if err := uc.cache.Delete(ctx, Keys...); err != nil {
		log.Printf("stats_invalidate_error error=%q", err.Error())
	}
}

// ------------------------------------------------------
// cache-aside
// ------------------------------------------------------

// cached returns the report stored under key, computing and storing it on a
// miss. A broken cache degrades to computing every time.
func cached[T any](
	ctx context.Context,
	uc *Reports,
	key string,
	compute func(context.Context) (T, error),
) (T, error) {

	var out T
	hit, err := uc.cache.Get(ctx, key, &out)
	if err != nil {
		log.Printf("stats_cache_error op=get key=%s error=%q", key, err.Error())
	}
	metrics.RecordStatsCache(hit)
	if hit {
		return out, nil
	}

	out, err = compute(ctx)
	if err != nil {
		return out, err
	}

	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		log.Printf("stats_cache_error op=set key=%s error=%q", key, err.Error())
	}
	return out, nil
}

// ------------------------------------------------------
// builders
// ------------------------------------------------------

func (uc *Reports) summary(ctx context.Context) (*domain.Summary, error) {
	clients, err := uc.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	procedures, err := uc.repo.CountProcedures(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Rows(ctx)
	if err != nil {
		return nil, err
	}

	counts, revenue := domain.CountStatuses(rows)
	s := &domain.Summary{
		TotalClients:      clients,
		TotalProcedures:   procedures,
		Appointments:      counts,
		Revenue:           revenue,
		PopularProcedures: []domain.PopularProcedure{},
		FrequentClients:   []domain.FrequentClient{},
	}

	topProcedures := domain.Top(rows, domain.ByProcedure, domain.TopN)
	pnames, err := uc.repo.ProcedureNames(ctx, domain.IDs(topProcedures))
	if err != nil {
		return nil, err
	}
	for _, t := range topProcedures {
		s.PopularProcedures = append(s.PopularProcedures, domain.PopularProcedure{
			ID:    t.ID,
			Name:  nameOr(pnames[t.ID].Name, "Unknown Procedure"),
			Count: t.Count,
		})
	}

	topClients := domain.Top(rows, domain.ByClient, domain.TopN)
	cnames, err := uc.repo.ClientNames(ctx, domain.IDs(topClients))
	if err != nil {
		return nil, err
	}
	for _, t := range topClients {
		n := cnames[t.ID]
		s.FrequentClients = append(s.FrequentClients, domain.FrequentClient{
			ID:      t.ID,
			Name:    nameOr(n.Name, "Unknown Client"),
			SurName: n.SurName,
			Count:   t.Count,
		})
	}

	return s, nil
}

func (uc *Reports) retention(ctx context.Context) ([]domain.ClientRetention, error) {
	rows, err := uc.repo.Rows(ctx)
	if err != nil {
		return nil, err
	}

	all := domain.Top(rows, domain.ByClient, 0)
	names, err := uc.repo.ClientNames(ctx, domain.IDs(all))
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClientRetention, 0, len(all))
	for _, t := range all {
		n, ok := names[t.ID]
		if !ok {
			// appointments of deleted clients are gone with them
			continue
		}
		out = append(out, domain.ClientRetention{
			ClientID:         t.ID,
			Name:             n.Name,
			SurName:          n.SurName,
			AppointmentCount: t.Count,
		})
	}
	return out, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
