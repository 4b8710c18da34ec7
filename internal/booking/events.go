package booking

import (
	"context"
	"encoding/json"
)

const (
	eventBookingCreated       = "BOOKING_CREATED"
	eventBookingStatusChanged = "BOOKING_STATUS_CHANGED"
)

// Broadcaster pushes booking snapshots to connected clients. Implementations
// must not block; a failed delivery is dropped, never surfaced to the caller.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Notifier queues user-facing notifications outside the request transaction.
type Notifier interface {
	BookingPaid(ctx context.Context, bookingRef string)
}

type event struct {
	Type    string   `json:"type"`
	Booking Response `json:"booking"`
}

// emit runs after commit only; a booking that failed admission is never
// announced.
func (s *Service) emit(eventType string, b Booking) {
	if s.broadcaster == nil {
		return
	}
	payload, _ := json.Marshal(event{Type: eventType, Booking: b.Response()})
	s.broadcaster.Broadcast(payload)
}

func (s *Service) notifyPaid(ctx context.Context, bookingRef string) {
	if s.notifier == nil {
		return
	}
	s.notifier.BookingPaid(ctx, bookingRef)
}
