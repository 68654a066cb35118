package booking

import (
	"context"
	"time"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// Save persists a new booking and assigns its id.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStatus persists a status change. It succeeds only when the stored
	// version is the one the booking was loaded with; otherwise it returns a conflict.
	UpdateStatus(ctx context.Context, booking *Booking) error

	// Find evaluates a listing query: role scope and bucket, ordered by start
	// descending then id, windowed by the query page.
	Find(ctx context.Context, q Query) ([]*Booking, error)

	// FindLastForItem returns the latest booking of an item that started before now, or nil.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// FindNextForItem returns the earliest non-rejected booking of an item starting after now, or nil.
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// HasFinishedBooking reports whether bookerID has an approved booking of itemID that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}
