package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a domain error so the HTTP layer can map it to a status
// code without inspecting message text.
type Kind string

const (
	KindInvalid          Kind = "INVALID"
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindConflict         Kind = "CONFLICT"
	KindCapacityExceeded Kind = "CAPACITY_EXCEEDED"
)

// Error is a domain error with a Kind. Capacity rejections additionally
// carry the first violating day and the capacity remaining on that day.
type Error struct {
	Kind      Kind
	Message   string
	Day       time.Time
	Remaining int
}

func (e *Error) Error() string { return e.Message }

func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// CapacityExceeded reports the first day on which admitting the requested
// quantity would overrun the resource.
func CapacityExceeded(resource string, day time.Time, remaining int) *Error {
	return &Error{
		Kind:      KindCapacityExceeded,
		Message:   fmt.Sprintf("%s is full on %s: %d remaining", resource, day.Format("2006-01-02"), remaining),
		Day:       day,
		Remaining: remaining,
	}
}

// KindOf unwraps err and returns its Kind, or "" for non-domain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }
