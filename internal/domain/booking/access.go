package booking

import "github.com/shareit-rental/service-booking/internal/platform/apperror"

// CanView reports whether actorID may read this booking: only its booker and the item owner can.
func (b *Booking) CanView(actorID, itemOwnerID int64) bool {
	return actorID == b.bookerID || actorID == itemOwnerID
}

// GuardView returns the booking unchanged when actorID may read it. Otherwise it
// reports the booking as missing so its existence does not leak.
func GuardView(b *Booking, actorID, itemOwnerID int64) (*Booking, error) {
	if b == nil || !b.CanView(actorID, itemOwnerID) {
		id := int64(0)
		if b != nil {
			id = b.id
		}
		return nil, apperror.NewNotFoundError("Booking", id)
	}
	return b, nil
}
