package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	"github.com/shareit-rental/service-booking/internal/domain/item"
	"github.com/shareit-rental/service-booking/internal/platform/apperror"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
)

const eventSource = "service-booking"

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,gt=0"`
	Start  time.Time `json:"start" binding:"required,notpast"`
	End    time.Time `json:"end" binding:"required,notpast"`
}

// BookingItemDTO is the item as embedded in a booking response.
type BookingItemDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingBookerDTO is the booker as embedded in a booking response.
type BookingBookerDTO struct {
	ID int64 `json:"id"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        int64            `json:"id"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Status    string           `json:"status"`
	Item      BookingItemDTO   `json:"item"`
	Booker    BookingBookerDTO `json:"booker"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// BookingPage is one window of a booking listing.
type BookingPage struct {
	Items []BookingDTO
	From  int
	Size  int
	Page  int
}

// BookingService orchestrates booking creation, decisions, retrieval and listing.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	directory Directory
	locker    DecisionLocker
	publisher EventPublisher
	lockTTL   time.Duration
	clock     Clock
	logger    *zap.Logger
}

// BookingServiceOption customizes a BookingService.
type BookingServiceOption func(*BookingService)

// WithDecisionLocker serializes decisions through locker for ttl.
func WithDecisionLocker(locker DecisionLocker, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithEventPublisher publishes lifecycle events through publisher.
func WithEventPublisher(publisher EventPublisher) BookingServiceOption {
	return func(s *BookingService) { s.publisher = publisher }
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) BookingServiceOption {
	return func(s *BookingService) { s.clock = clock }
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	directory Directory,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		repo:      repo,
		directory: directory,
		clock:     SystemClock,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking requests a booking of an item on behalf of bookerID.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	now := s.clock()

	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	snap, err := s.directory.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !snap.Available {
		return nil, apperror.NewValidationError(fmt.Sprintf("item %d is not available for booking", snap.ID))
	}
	if snap.OwnerID == bookerID {
		return nil, apperror.NewForbiddenError("an owner cannot book their own item")
	}

	bk, err := bookingDomain.NewBooking(snap.ID, bookerID, req.Start, req.End, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", bk.ID()),
		zap.Int64("item_id", snap.ID),
		zap.Int64("booker_id", bookerID),
	)
	s.publishEvent(ctx, bookingDomain.EventBookingCreated,
		bookingDomain.NewLifecycleEvent(bk, snap.OwnerID, snap.Name, bookerID, now))

	result := toBookingDTO(bk, snap)
	return &result, nil
}

// DecideBooking applies actorID's decision: the owner approves or rejects, the booker cancels.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID, actorID int64, approved bool) (*BookingDTO, error) {
	now := s.clock()

	release, err := s.acquireDecisionLock(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	snap, err := s.directory.GetItem(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}

	decision, err := bk.Decide(actorID, snap.OwnerID, approved, now)
	if err != nil {
		s.logger.Debug("booking decision refused",
			zap.Int64("booking_id", bookingID),
			zap.Int64("actor_id", actorID),
			zap.String("status", bk.Status().String()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.Int64("booking_id", bookingID),
		zap.Int64("actor_id", actorID),
		zap.String("decision", string(decision)),
		zap.String("status", bk.Status().String()),
	)
	s.publishEvent(ctx, bookingDomain.EventTypeFor(decision),
		bookingDomain.NewLifecycleEvent(bk, snap.OwnerID, snap.Name, actorID, now))

	result := toBookingDTO(bk, snap)
	return &result, nil
}

// GetBooking returns a booking visible to actorID. Bookings the actor may not see are reported as missing.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, actorID int64) (*BookingDTO, error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	snap, err := s.directory.GetItem(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if _, err := bookingDomain.GuardView(bk, actorID, snap.OwnerID); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk, snap)
	return &result, nil
}

// ListBookerBookings lists bookings requested by bookerID.
func (s *BookingService) ListBookerBookings(ctx context.Context, bookerID int64, state string, from, size int) (*BookingPage, error) {
	return s.list(ctx, bookingDomain.RoleBooker, bookerID, state, from, size)
}

// ListOwnerBookings lists bookings of items owned by ownerID.
func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID int64, state string, from, size int) (*BookingPage, error) {
	return s.list(ctx, bookingDomain.RoleOwner, ownerID, state, from, size)
}

func (s *BookingService) list(ctx context.Context, role bookingDomain.ActorRole, actorID int64, rawState string, from, size int) (*BookingPage, error) {
	now := s.clock()

	state, err := bookingDomain.ParseState(rawState)
	if err != nil {
		return nil, err
	}
	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	q, err := bookingDomain.NewQuery(role, actorID, state, page, now)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	snaps := make(map[int64]item.Snapshot)
	dtos := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		snap, ok := snaps[bk.ItemID()]
		if !ok {
			if snap, err = s.directory.GetItem(ctx, bk.ItemID()); err != nil {
				return nil, err
			}
			snaps[bk.ItemID()] = snap
		}
		dtos = append(dtos, toBookingDTO(bk, snap))
	}

	return &BookingPage{Items: dtos, From: page.From, Size: page.Size, Page: page.Index()}, nil
}

func (s *BookingService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.directory.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFoundError("User", userID)
	}
	return nil
}

func (s *BookingService) acquireDecisionLock(ctx context.Context, bookingID int64) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	token, err := s.locker.AcquireDecisionLock(ctx, bookingID, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking %d: %w", bookingID, err)
	}
	if token == "" {
		return nil, apperror.NewConflictError("another decision on this booking is in progress")
	}
	return func() {
		if err := s.locker.ReleaseDecisionLock(ctx, bookingID, token); err != nil {
			s.logger.Warn("failed to release booking lock", zap.Int64("booking_id", bookingID), zap.Error(err))
		}
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking, snap item.Snapshot) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    bk.Status().String(),
		Item:      BookingItemDTO{ID: bk.ItemID(), Name: snap.Name},
		Booker:    BookingBookerDTO{ID: bk.BookerID()},
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, evt bookingDomain.LifecycleEvent) {
	if s.publisher == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = evt.Subject()

	if err := s.publisher.PublishEvent(ctx, bookingDomain.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", bookingDomain.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Int64("booking_id", evt.BookingID),
			zap.Error(err),
		)
	}
}
