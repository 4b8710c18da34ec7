package booking

import "github.com/faazahm/backend-camping/internal/shared/apperr"

// Status is a booking's lifecycle state. Only the active statuses consume
// campsite capacity and equipment stock; a PENDING booking reserves nothing
// until an admin confirms payment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCheckIn   Status = "CHECK_IN"
	StatusCheckOut  Status = "CHECK_OUT"
	StatusCancelled Status = "CANCELLED"
)

// Active reports whether the status counts toward daily usage.
func (s Status) Active() bool { return s == StatusPaid || s == StatusCheckIn }

// Terminal reports whether the status ends the lifecycle.
func (s Status) Terminal() bool { return s == StatusCheckOut || s == StatusCancelled }

// transitions holds the admin-drivable moves. PENDING is only ever assigned
// at creation; terminal statuses have no exits.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCheckIn, StatusCancelled},
	StatusPaid:    {StatusCheckIn, StatusCheckOut, StatusCancelled},
	StatusCheckIn: {StatusCheckOut, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusCheckIn, StatusCheckOut, StatusCancelled:
		return Status(s), nil
	}
	return "", apperr.Invalidf("unknown status %q", s)
}

// activeStatusList is the SQL-side counterpart of Status.Active, passed to
// status = ANY($n) filters.
func activeStatusList() []string {
	return []string{string(StatusPaid), string(StatusCheckIn)}
}
