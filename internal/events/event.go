// Package events carries booking lifecycle notifications out of a session.
// Publishing is best effort: the database stays the source of truth.
package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated           = "booking_created"
	TypeBookingCancelled         = "booking_cancelled"
	TypePendingBookingsCancelled = "pending_bookings_cancelled"
	TypeSeatChanged              = "seat_changed"
	TypeCancelledBookingsCleared = "cancelled_bookings_cleared"
	TypeShowRemoved              = "show_removed"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id,omitempty"`
	ShowID     int64     `json:"show_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Status     string    `json:"status,omitempty"`
	FromSeatID int64     `json:"from_seat_id,omitempty"`
	ToSeatID   int64     `json:"to_seat_id,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent stamps an event of the given type with a fresh id and the
// current time.
func NewBookingEvent(eventType string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// Key is the partition key: the booking when there is one, else the show,
// else the event type.
func (e BookingEvent) Key() string {
	switch {
	case e.BookingID != 0:
		return "booking-" + strconv.FormatInt(e.BookingID, 10)
	case e.ShowID != 0:
		return "show-" + strconv.FormatInt(e.ShowID, 10)
	default:
		return e.Type
	}
}
