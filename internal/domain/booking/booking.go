package booking

import (
	"time"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	start    time.Time
	end      time.Time
	status   BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a WAITING booking. The id is assigned by the repository on Save.
func NewBooking(itemID, bookerID int64, start, end, now time.Time) (*Booking, error) {
	if itemID <= 0 {
		return nil, apperror.NewValidationError("item ID is required")
	}
	if bookerID <= 0 {
		return nil, apperror.NewValidationError("booker ID is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidationError("booking start and end are required")
	}
	if !start.Before(end) {
		return nil, apperror.NewValidationError("booking start must be before its end")
	}

	now = now.UTC()
	return &Booking{
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, bookerID int64,
	start, end time.Time,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's identifier, zero until persisted.
func (b *Booking) ID() int64 { return b.id }

// ItemID returns the booked item's ID.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the requesting user's ID.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Start returns the beginning of the rental window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the rental window.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// AssignID records the identifier generated by the store.
func (b *Booking) AssignID(id int64) { b.id = id }

// IsExpired reports whether the rental window ended before now.
func (b *Booking) IsExpired(now time.Time) bool { return b.end.Before(now) }

// IsActiveAt reports whether now falls inside [start, end].
func (b *Booking) IsActiveAt(now time.Time) bool {
	return !now.Before(b.start) && !now.After(b.end)
}

// RoleOf classifies actorID against this booking.
func (b *Booking) RoleOf(actorID, itemOwnerID int64) ActorRole {
	return ResolveRole(b.bookerID, itemOwnerID, actorID)
}

// Decide applies actorID's decision. approved=false means cancel for the booker and
// reject for the owner. On success the status changes and the version is bumped.
func (b *Booking) Decide(actorID, itemOwnerID int64, approved bool, now time.Time) (Decision, error) {
	if b.IsExpired(now) {
		return "", ErrBookingExpired
	}

	role := b.RoleOf(actorID, itemOwnerID)
	decision := DecisionFor(role, approved)
	next, err := Transition(b.status, role, decision)
	if err != nil {
		return decision, err
	}

	b.status = next
	b.version++
	b.updatedAt = now.UTC()
	return decision, nil
}

