package booking

import (
	"strconv"
	"time"
)

// TopicBookingEvents carries every booking lifecycle event.
const TopicBookingEvents = "booking.events"

// Event types published on TopicBookingEvents.
const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
	EventBookingCanceled = "booking.canceled"
)

// LifecycleEvent is the payload of every booking lifecycle event.
type LifecycleEvent struct {
	BookingID  int64     `json:"bookingId"`
	ItemID     int64     `json:"itemId"`
	ItemName   string    `json:"itemName"`
	OwnerID    int64     `json:"ownerId"`
	BookerID   int64     `json:"bookerId"`
	ActorID    int64     `json:"actorId"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewLifecycleEvent describes b as seen right after actorID changed it.
func NewLifecycleEvent(b *Booking, ownerID int64, itemName string, actorID int64, now time.Time) LifecycleEvent {
	return LifecycleEvent{
		BookingID:  b.ID(),
		ItemID:     b.ItemID(),
		ItemName:   itemName,
		OwnerID:    ownerID,
		BookerID:   b.BookerID(),
		ActorID:    actorID,
		Status:     b.Status().String(),
		Start:      b.Start(),
		End:        b.End(),
		OccurredAt: now.UTC(),
	}
}

// Subject is the partition key of the event.
func (e LifecycleEvent) Subject() string {
	return strconv.FormatInt(e.BookingID, 10)
}

// EventTypeFor returns the event type emitted after a successful decision.
func EventTypeFor(d Decision) string {
	switch d {
	case DecisionApprove:
		return EventBookingApproved
	case DecisionReject:
		return EventBookingRejected
	default:
		return EventBookingCanceled
	}
}

// Recipient returns who should hear about an event: the owner learns about new
// and canceled requests, the booker about the owner's decision.
func (e LifecycleEvent) Recipient(eventType string) int64 {
	switch eventType {
	case EventBookingApproved, EventBookingRejected:
		return e.BookerID
	default:
		return e.OwnerID
	}
}
