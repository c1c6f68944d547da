package appointment

import "github.com/zhotheone/nailapp/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var statuses = map[Status]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statuses[st]; !ok {
		return "", httperr.ErrValidation("invalid_status", "status must be one of pending, confirmed, completed, cancelled")
	}
	return st, nil
}

func InitialStatus() Status {
	return StatusPending
}

// Active appointments hold their slot.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// ===============================
// Transitions
// ===============================

// CanTransition is the single place status changes are approved. Every
// transition is currently allowed, terminal states included.
// TODO: forbid leaving completed/cancelled once the salon agrees on the rule.
func CanTransition(from, to Status) bool {
	return true
}
