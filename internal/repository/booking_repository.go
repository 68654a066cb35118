package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `gorm:"not null;index"`
	BookerID  int64     `gorm:"not null;index"`
	StartAt   time.Time `gorm:"type:timestamptz;not null;index"`
	EndAt     time.Time `gorm:"type:timestamptz;not null"`
	Status    string    `gorm:"not null;size:20;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Save persists a new booking and assigns the generated id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	bk.AssignID(model.ID)
	return nil
}

// UpdateStatus persists a status change with optimistic locking.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking) error {
	// The aggregate bumped its version when deciding; the row still holds the previous one.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ? AND status = ?", bk.ID(), expectedVersion, string(bookingDomain.StatusWaiting)).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Find evaluates a listing query as role scope + bucket + window.
func (r *GormBookingRepository) Find(ctx context.Context, q bookingDomain.Query) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("bookings.*").
		Scopes(roleScope(q), bucketScope(q)).
		Order("bookings.start_at DESC").
		Order("bookings.id ASC").
		Offset(q.Page.From).
		Limit(q.Page.Size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s bookings: %w", q.Role, err)
	}
	return toDomainBookings(models)
}

// FindLastForItem returns the latest booking that started before now.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	return findFirstBooking(
		r.db.WithContext(ctx).
			Where("item_id = ? AND start_at < ?", itemID, now).
			Order("end_at DESC"),
	)
}

// FindNextForItem returns the earliest non-rejected booking starting after now.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	return findFirstBooking(
		r.db.WithContext(ctx).
			Where("item_id = ? AND start_at > ? AND status <> ?", itemID, now, string(bookingDomain.StatusRejected)).
			Order("start_at ASC"),
	)
}

// HasFinishedBooking reports whether bookerID rented itemID and the rental ended before now.
func (r *GormBookingRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND end_at < ? AND status = ?",
			itemID, bookerID, now, string(bookingDomain.StatusApproved)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

func findFirstBooking(tx *gorm.DB) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := tx.Limit(1).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item booking: %w", err)
	}
	return toDomainBooking(&model)
}

// --- Query scopes ---

func roleScope(q bookingDomain.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Role == bookingDomain.RoleOwner {
			return db.
				Joins("JOIN items ON items.id = bookings.item_id").
				Where("items.owner_id = ?", q.ActorID)
		}
		return db.Where("bookings.booker_id = ?", q.ActorID)
	}
}

func bucketScope(q bookingDomain.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch q.State {
		case bookingDomain.StateCurrent:
			return db.Where("bookings.start_at <= ? AND bookings.end_at >= ?", q.Now, q.Now)
		case bookingDomain.StatePast:
			return db.Where("bookings.end_at < ?", q.Now)
		case bookingDomain.StateFuture:
			return db.Where("bookings.start_at > ?", q.Now)
		case bookingDomain.StateWaiting:
			return db.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
		case bookingDomain.StateRejected:
			return db.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
		default:
			return db
		}
	}
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt.UTC(),
		m.EndAt.UTC(),
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
