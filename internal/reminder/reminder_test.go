package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/models"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Reminder
}

func (n *recordingNotifier) Notify(_ context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, r)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func confirmedAt(id uint, at time.Time) models.Appointment {
	return models.Appointment{
		ID:          id,
		ScheduledAt: at,
		Status:      string(domain.StatusConfirmed),
		Client:      &models.Client{Name: "Olena", SurName: "Koval", PhoneNum: "+380501112233"},
	}
}

func TestSchedule_FiresLeadBeforeStart(t *testing.T) {
	n := &recordingNotifier{}
	s := NewScheduler(n, 30*time.Minute)
	defer s.Stop()

	// starts in 30m + 20ms, so the reminder is due in 20ms
	s.Schedule(confirmedAt(1, time.Now().Add(30*time.Minute+20*time.Millisecond)))
	assert.Equal(t, 1, s.Pending())

	assert.Eventually(t, func() bool { return n.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, s.Pending())

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, "Olena Koval", n.sent[0].ClientName)
	assert.Equal(t, "Unknown Procedure", n.sent[0].ProcedureName)
}

func TestSchedule_OnlyConfirmedFutureAppointments(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, 30*time.Minute)
	defer s.Stop()

	pending := confirmedAt(1, time.Now().Add(2*time.Hour))
	pending.Status = string(domain.StatusPending)
	s.Schedule(pending)
	s.Schedule(confirmedAt(2, time.Now().Add(-time.Hour)))
	assert.Equal(t, 0, s.Pending())

	s.Schedule(confirmedAt(3, time.Now().Add(2*time.Hour)))
	assert.Equal(t, 1, s.Pending())
}

func TestSchedule_LeavingConfirmedCancels(t *testing.T) {
	n := &recordingNotifier{}
	s := NewScheduler(n, 30*time.Minute)
	defer s.Stop()

	ap := confirmedAt(1, time.Now().Add(2*time.Hour))
	s.Schedule(ap)
	require.Equal(t, 1, s.Pending())

	ap.Status = string(domain.StatusCancelled)
	s.Schedule(ap)
	assert.Equal(t, 0, s.Pending())

	s.Schedule(confirmedAt(2, time.Now().Add(2*time.Hour)))
	s.Cancel(2)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, n.count())
}

func TestSchedule_RescheduleReplacesTimer(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, 30*time.Minute)
	defer s.Stop()

	s.Schedule(confirmedAt(1, time.Now().Add(2*time.Hour)))
	s.Schedule(confirmedAt(1, time.Now().Add(3*time.Hour)))
	assert.Equal(t, 1, s.Pending())
}

type listerFunc func(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error)

func (f listerFunc) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	return f(ctx, filter)
}

func TestRebuild_AsksForConfirmedFuture(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, 30*time.Minute)
	defer s.Stop()

	var seen domain.ListFilter
	n, err := s.Rebuild(context.Background(), listerFunc(func(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
		seen = f
		return []models.Appointment{
			confirmedAt(1, time.Now().Add(time.Hour)),
			confirmedAt(2, time.Now().Add(48*time.Hour)),
		}, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NotNil(t, seen.Status)
	assert.Equal(t, domain.StatusConfirmed, *seen.Status)
	assert.NotNil(t, seen.From)
}

func TestStop_DropsEverything(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, 30*time.Minute)
	s.Schedule(confirmedAt(1, time.Now().Add(time.Hour)))
	s.Stop()
	s.Stop()

	assert.Equal(t, 0, s.Pending())
	s.Schedule(confirmedAt(2, time.Now().Add(time.Hour)))
	assert.Equal(t, 0, s.Pending())
}
