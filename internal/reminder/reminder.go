package reminder

import (
	"context"
	"log"
	"sync"
	"time"

	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/metrics"
	"github.com/zhotheone/nailapp/internal/models"
)

type Reminder struct {
	AppointmentID uint
	ClientName    string
	ClientPhone   string
	ProcedureName string
	At            time.Time
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the process log.
type LogNotifier struct {
	Location *time.Location
}

func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	loc := n.Location
	if loc == nil {
		loc = time.UTC
	}
	log.Printf(
		"reminder appointment_id=%d client=%q phone=%q procedure=%q at=%s",
		r.AppointmentID, r.ClientName, r.ClientPhone, r.ProcedureName,
		r.At.In(loc).Format("2006-01-02 15:04"),
	)
	return nil
}

// Scheduler keeps one timer per confirmed appointment and fires it lead
// before the appointment starts.
type Scheduler struct {
	mu       sync.Mutex
	timers   map[uint]*time.Timer
	lead     time.Duration
	notifier Notifier
	now      func() time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

func NewScheduler(notifier Notifier, lead time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		timers:   make(map[uint]*time.Timer),
		lead:     lead,
		notifier: notifier,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Schedule (re)arms the reminder for ap. Anything but a confirmed future
// appointment only clears an existing timer.
func (s *Scheduler) Schedule(ap models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopLocked(ap.ID)

	now := s.now()
	if domain.Status(ap.Status) != domain.StatusConfirmed || !ap.ScheduledAt.After(now) {
		metrics.SetRemindersPending(len(s.timers))
		return
	}

	r := newReminder(ap)
	delay := ap.ScheduledAt.Add(-s.lead).Sub(now)
	if delay < 0 {
		delay = 0
	}

	// fire takes s.mu, so it cannot observe t before the assignment below.
	var t *time.Timer
	t = time.AfterFunc(delay, func() { s.fire(t, r) })
	s.timers[ap.ID] = t
	metrics.SetRemindersPending(len(s.timers))
}

func (s *Scheduler) Cancel(appointmentID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(appointmentID)
	metrics.SetRemindersPending(len(s.timers))
}

func (s *Scheduler) stopLocked(id uint) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(t *time.Timer, r Reminder) {
	s.mu.Lock()
	if s.stopped || s.timers[r.AppointmentID] != t {
		s.mu.Unlock()
		return
	}
	delete(s.timers, r.AppointmentID)
	metrics.SetRemindersPending(len(s.timers))
	s.mu.Unlock()

	if err := s.notifier.Notify(s.ctx, r); err != nil {
		metrics.RecordReminder("failed")
		log.Printf("reminder_failed appointment_id=%d error=%q", r.AppointmentID, err.Error())
		return
	}
	metrics.RecordReminder("sent")
}

type appointmentLister interface {
	ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error)
}

// Rebuild arms reminders for every confirmed appointment still ahead.
func (s *Scheduler) Rebuild(ctx context.Context, repo appointmentLister) (int, error) {
	confirmed := domain.StatusConfirmed
	from := s.now()

	apps, err := repo.ListAppointments(ctx, domain.ListFilter{Status: &confirmed, From: &from})
	if err != nil {
		return 0, err
	}
	for _, ap := range apps {
		s.Schedule(ap)
	}
	return s.Pending(), nil
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.cancel()
	metrics.SetRemindersPending(0)
}

func newReminder(ap models.Appointment) Reminder {
	r := Reminder{
		AppointmentID: ap.ID,
		ClientName:    "Unknown Client",
		ProcedureName: "Unknown Procedure",
		At:            ap.ScheduledAt,
	}
	if ap.Client != nil {
		r.ClientName = ap.Client.Name + " " + ap.Client.SurName
		r.ClientPhone = ap.Client.PhoneNum
	}
	if ap.Procedure != nil {
		r.ProcedureName = ap.Procedure.Name
	}
	return r
}

var _ domain.Reminders = (*Scheduler)(nil)
