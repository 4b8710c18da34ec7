// Package notify publishes booking notifications to a redis channel that a
// delivery worker (mail, push) consumes. Publishing is fire-and-forget: a
// booking state change never fails because the notification could not be
// queued.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const notificationsChannel = "notifications"

const TypeBookingPaid = "BOOKING_PAID"

type Notification struct {
	BookingRef string `json:"bookingRef"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

type Notifier struct {
	redis *redis.Client
}

// NewNotifier accepts a nil client; every publish then becomes a no-op.
func NewNotifier(redisClient *redis.Client) *Notifier {
	return &Notifier{redis: redisClient}
}

func (n *Notifier) BookingPaid(ctx context.Context, bookingRef string) {
	n.publish(ctx, Notification{
		BookingRef: bookingRef,
		Message:    "your booking has been paid",
		Type:       TypeBookingPaid,
	})
}

func (n *Notifier) publish(ctx context.Context, notification Notification) {
	if n == nil || n.redis == nil {
		return
	}

	payload, _ := json.Marshal(notification)
	if err := n.redis.Publish(ctx, notificationsChannel, payload).Err(); err != nil {
		log.Printf("notification publish error: %v", err)
	}
}
