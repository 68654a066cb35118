package booking

import (
	"strings"
	"time"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// State is a listing bucket that partitions bookings by time window or status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState accepts a bucket name in any case. An empty value means ALL.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownStates[s]; !ok {
		return "", apperror.NewValidationError("Unknown state: " + raw)
	}
	return s, nil
}

// Page is an offset window over an ordered result.
type Page struct {
	From int
	Size int
}

// NewPage validates an offset window.
func NewPage(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, apperror.NewValidationError("from must not be negative")
	}
	if size <= 0 {
		return Page{}, apperror.NewValidationError("size must be positive")
	}
	return Page{From: from, Size: size}, nil
}

// Index is the zero-based page number the window starts in.
func (p Page) Index() int { return p.From / p.Size }

// Query is a role-scoped, bucketed, paginated listing request evaluated at a fixed instant.
type Query struct {
	Role    ActorRole
	ActorID int64
	State   State
	Page    Page
	Now     time.Time
}

// NewQuery builds a listing query. Only bookers and owners can list.
func NewQuery(role ActorRole, actorID int64, state State, page Page, now time.Time) (Query, error) {
	if role != RoleBooker && role != RoleOwner {
		return Query{}, apperror.NewValidationError("bookings can only be listed by booker or owner")
	}
	if _, ok := knownStates[state]; !ok {
		return Query{}, apperror.NewValidationError("Unknown state: " + string(state))
	}
	return Query{Role: role, ActorID: actorID, State: state, Page: page, Now: now.UTC()}, nil
}

// InScope reports whether b belongs to the actor under the query's role.
func (q Query) InScope(b *Booking, itemOwnerID int64) bool {
	if q.Role == RoleOwner {
		return itemOwnerID == q.ActorID
	}
	return b.BookerID() == q.ActorID
}

// InBucket reports whether b falls in the query's bucket at q.Now.
func (q Query) InBucket(b *Booking) bool {
	switch q.State {
	case StateCurrent:
		return b.IsActiveAt(q.Now)
	case StatePast:
		return b.End().Before(q.Now)
	case StateFuture:
		return b.Start().After(q.Now)
	case StateWaiting:
		return b.Status() == StatusWaiting
	case StateRejected:
		return b.Status() == StatusRejected
	default:
		return true
	}
}

// Matches combines the role scope and the bucket predicate.
func (q Query) Matches(b *Booking, itemOwnerID int64) bool {
	return q.InScope(b, itemOwnerID) && q.InBucket(b)
}

// Less orders bookings newest start first, ties by id.
func Less(a, b *Booking) bool {
	if !a.Start().Equal(b.Start()) {
		return a.Start().After(b.Start())
	}
	return a.ID() < b.ID()
}
