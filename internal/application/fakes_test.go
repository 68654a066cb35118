package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-rental/service-booking/internal/domain/comment"
	"github.com/shareit-rental/service-booking/internal/domain/item"
	userDomain "github.com/shareit-rental/service-booking/internal/domain/user"
	"github.com/shareit-rental/service-booking/internal/platform/apperror"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
)

// memBookingRepo evaluates listing queries in memory with the same ordering and window as the SQL store.
type memBookingRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*bookingDomain.Booking
	owners map[int64]int64
}

func newMemBookingRepo(owners map[int64]int64) *memBookingRepo {
	return &memBookingRepo{rows: map[int64]*bookingDomain.Booking{}, owners: owners}
}

func cloneBooking(b *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(b.ID(), b.ItemID(), b.BookerID(), b.Start(), b.End(),
		b.Status(), b.Version(), b.CreatedAt(), b.UpdatedAt())
}

func (r *memBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Booking", id)
	}
	return cloneBooking(b), nil
}

func (r *memBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.AssignID(r.nextID)
	r.rows[b.ID()] = cloneBooking(b)
	return nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[b.ID()]
	if !ok || stored.Version() != b.Version()-1 || stored.Status() != bookingDomain.StatusWaiting {
		return apperror.NewConflictError("booking was modified by another transaction")
	}
	r.rows[b.ID()] = cloneBooking(b)
	return nil
}

func (r *memBookingRepo) Find(_ context.Context, q bookingDomain.Query) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*bookingDomain.Booking
	for _, b := range r.rows {
		if q.Matches(b, r.owners[b.ItemID()]) {
			matched = append(matched, cloneBooking(b))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return bookingDomain.Less(matched[i], matched[j]) })

	if q.Page.From >= len(matched) {
		return []*bookingDomain.Booking{}, nil
	}
	end := q.Page.From + q.Page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Page.From:end], nil
}

func (r *memBookingRepo) FindLastForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *bookingDomain.Booking
	for _, b := range r.rows {
		if b.ItemID() == itemID && b.Start().Before(now) && (last == nil || b.End().After(last.End())) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	return cloneBooking(last), nil
}

func (r *memBookingRepo) FindNextForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var next *bookingDomain.Booking
	for _, b := range r.rows {
		if b.ItemID() == itemID && b.Start().After(now) && b.Status() != bookingDomain.StatusRejected &&
			(next == nil || b.Start().Before(next.Start())) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	return cloneBooking(next), nil
}

func (r *memBookingRepo) HasFinishedBooking(_ context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.rows {
		if b.ItemID() == itemID && b.BookerID() == bookerID && b.End().Before(now) &&
			b.Status() == bookingDomain.StatusApproved {
			return true, nil
		}
	}
	return false, nil
}

// fakeDirectory serves fixed items and users.
type fakeDirectory struct {
	items map[int64]item.Snapshot
	users map[int64]bool
}

func (d *fakeDirectory) GetItem(_ context.Context, itemID int64) (item.Snapshot, error) {
	snap, ok := d.items[itemID]
	if !ok {
		return item.Snapshot{}, apperror.NewNotFoundError("Item", itemID)
	}
	return snap, nil
}

func (d *fakeDirectory) UserExists(_ context.Context, userID int64) (bool, error) {
	return d.users[userID], nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) AcquireDecisionLock(ctx context.Context, bookingID int64, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bookingID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockLocker) ReleaseDecisionLock(ctx context.Context, bookingID int64, token string) error {
	args := m.Called(ctx, bookingID, token)
	return args.Error(0)
}

type MockItemCache struct {
	mock.Mock
}

func (m *MockItemCache) GetItem(ctx context.Context, itemID int64) (*item.Snapshot, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Snapshot), args.Error(1)
}

func (m *MockItemCache) SetItem(ctx context.Context, snap item.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockItemCache) InvalidateItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e kafka.CloudEvent) bool { return e.Type == eventType })
}

type memItemRepo struct {
	nextID int64
	rows   map[int64]*item.Item
}

func newMemItemRepo() *memItemRepo { return &memItemRepo{rows: map[int64]*item.Item{}} }

func (r *memItemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Item", id)
	}
	return it, nil
}

func (r *memItemRepo) FindByOwnerID(_ context.Context, ownerID int64, from, size int) ([]*item.Item, error) {
	var out []*item.Item
	for id := int64(1); id <= r.nextID; id++ {
		if it, ok := r.rows[id]; ok && it.OwnerID() == ownerID {
			out = append(out, it)
		}
	}
	if from >= len(out) {
		return nil, nil
	}
	if from+size < len(out) {
		out = out[:from+size]
	}
	return out[from:], nil
}

func (r *memItemRepo) Save(_ context.Context, it *item.Item) error {
	r.nextID++
	it.AssignID(r.nextID)
	r.rows[it.ID()] = it
	return nil
}

func (r *memItemRepo) Update(_ context.Context, it *item.Item) error {
	r.rows[it.ID()] = it
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id int64) error {
	delete(r.rows, id)
	return nil
}

type memCommentRepo struct {
	nextID int64
	rows   []*commentDomain.Comment
}

func (r *memCommentRepo) Save(_ context.Context, c *commentDomain.Comment) error {
	r.nextID++
	c.AssignID(r.nextID)
	r.rows = append(r.rows, c)
	return nil
}

func (r *memCommentRepo) FindByItemIDs(_ context.Context, itemIDs []int64) (map[int64][]*commentDomain.Comment, error) {
	out := map[int64][]*commentDomain.Comment{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		c := r.rows[i]
		for _, id := range itemIDs {
			if c.ItemID() == id {
				out[id] = append(out[id], c)
			}
		}
	}
	return out, nil
}

type memUserRepo struct {
	nextID int64
	rows   map[int64]*userDomain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{rows: map[int64]*userDomain.User{}} }

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFoundError("User", id)
	}
	return u, nil
}

func (r *memUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	var out []*userDomain.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.rows[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) emailTaken(u *userDomain.User) bool {
	for _, other := range r.rows {
		if other.ID() != u.ID() && other.Email() == u.Email() {
			return true
		}
	}
	return false
}

func (r *memUserRepo) Save(_ context.Context, u *userDomain.User) error {
	if r.emailTaken(u) {
		return apperror.NewConflictError("email " + u.Email() + " is already registered")
	}
	r.nextID++
	u.AssignID(r.nextID)
	r.rows[u.ID()] = u
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if r.emailTaken(u) {
		return apperror.NewConflictError("email " + u.Email() + " is already registered")
	}
	r.rows[u.ID()] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return apperror.NewNotFoundError("User", id)
	}
	delete(r.rows, id)
	return nil
}
