package booking

import (
	"time"

	"github.com/rentwheels/fleet-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusVerified  Status = "VERIFIED"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func InitialStatus() Status {
	return StatusPending
}

// BlockingStatuses are the statuses that count toward date-overlap
// conflicts when admitting a new booking.
var BlockingStatuses = []Status{
	StatusPending,
	StatusVerified,
	StatusApproved,
	StatusPaid,
	StatusActive,
}

func BlockingStatusStrings() []string {
	out := make([]string, len(BlockingStatuses))
	for i, s := range BlockingStatuses {
		out[i] = string(s)
	}
	return out
}

func (s Status) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// ===============================
// Actions & Transition Table
// ===============================

type Action string

const (
	ActionVerify   Action = "verify"
	ActionReject   Action = "reject"
	ActionApprove  Action = "approve"
	ActionPay      Action = "pay"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// transitions is the single source of truth for the status machine.
// A status absent from an action's row means the action is not legal there,
// which also keeps terminal statuses exit-free.
var transitions = map[Action]map[Status]Status{
	ActionVerify:   {StatusPending: StatusVerified},
	ActionReject:   {StatusPending: StatusRejected, StatusVerified: StatusRejected},
	ActionApprove:  {StatusVerified: StatusApproved},
	ActionPay:      {StatusApproved: StatusPaid},
	ActionStart:    {StatusApproved: StatusActive, StatusPaid: StatusActive},
	ActionComplete: {StatusActive: StatusCompleted},
	ActionCancel: {
		StatusPending:  StatusCancelled,
		StatusVerified: StatusCancelled,
		StatusApproved: StatusCancelled,
	},
}

// Next resolves (current, action) against the transition table.
func Next(current Status, action Action) (Status, error) {
	row, ok := transitions[action]
	if !ok {
		return "", httperr.ErrBusiness("unknown_action")
	}
	next, ok := row[current]
	if !ok {
		return "", httperr.ErrBusiness("invalid_transition")
	}
	return next, nil
}

// ActionForTarget maps a requested target status to the action that reaches
// it, so a staff status PATCH goes through the same transition table as the
// dedicated endpoints.
func ActionForTarget(target Status) (Action, bool) {
	switch target {
	case StatusVerified:
		return ActionVerify, true
	case StatusRejected:
		return ActionReject, true
	case StatusApproved:
		return ActionApprove, true
	case StatusPaid:
		return ActionPay, true
	case StatusActive:
		return ActionStart, true
	case StatusCompleted:
		return ActionComplete, true
	case StatusCancelled:
		return ActionCancel, true
	}
	return "", false
}

// ===============================
// Admission predicate
// ===============================

// Overlaps reports whether [s1, e1] intersects [s2, e2] with inclusive
// bounds: a rental ending on day X conflicts with one starting on day X.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}
