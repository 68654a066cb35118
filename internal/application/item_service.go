package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-rental/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-rental/service-booking/internal/domain/item"
	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingShortDTO is a booking as shown on its item.
type BookingShortDTO struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemDTO is the API response representation of an item.
type ItemDTO struct {
	ID          int64            `json:"id"`
	OwnerID     int64            `json:"ownerId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	LastBooking *BookingShortDTO `json:"lastBooking"`
	NextBooking *BookingShortDTO `json:"nextBooking"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements use cases for the item catalog.
type ItemService struct {
	items     itemDomain.ItemRepository
	bookings  bookingDomain.BookingRepository
	comments  commentDomain.CommentRepository
	directory *CachedDirectory
	clock     Clock
	logger    *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	bookings bookingDomain.BookingRepository,
	comments commentDomain.CommentRepository,
	directory *CachedDirectory,
	clock Clock,
	logger *zap.Logger,
) *ItemService {
	if clock == nil {
		clock = SystemClock
	}
	return &ItemService{
		items:     items,
		bookings:  bookings,
		comments:  comments,
		directory: directory,
		clock:     clock,
		logger:    logger,
	}
}

// CreateItem lists a new item owned by ownerID.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	available := req.Available != nil && *req.Available
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, s.clock())
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created", zap.Int64("item_id", it.ID()), zap.Int64("owner_id", ownerID))
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update. Only the owner sees the item as editable.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, ownerID int64, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, apperror.NewNotFoundError("Item", itemID)
	}

	patch := itemDomain.Patch{Name: req.Name, Description: req.Description, Available: req.Available}
	if err := it.Apply(patch, s.clock()); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	s.directory.Invalidate(ctx, itemID)

	s.logger.Info("item updated", zap.Int64("item_id", itemID))
	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns an item with its comments. The owner also sees the last and next booking.
func (s *ItemService) GetItem(ctx context.Context, itemID, viewerID int64) (*ItemDTO, error) {
	now := s.clock()
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	if it.IsOwnedBy(viewerID) {
		if err := s.attachBookings(ctx, &result, now); err != nil {
			return nil, err
		}
	}
	if err := s.attachComments(ctx, []*ItemDTO{&result}); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOwnerItems returns a window of the owner's items with bookings and comments.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]ItemDTO, error) {
	now := s.clock()
	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindByOwnerID(ctx, ownerID, page.From, page.Size)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	refs := make([]*ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
		refs[i] = &dtos[i]
		if err := s.attachBookings(ctx, &dtos[i], now); err != nil {
			return nil, err
		}
	}
	if err := s.attachComments(ctx, refs); err != nil {
		return nil, err
	}
	return dtos, nil
}

// DeleteItem removes an item. Only its owner may delete it.
func (s *ItemService) DeleteItem(ctx context.Context, itemID, ownerID int64) error {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !it.IsOwnedBy(ownerID) {
		return apperror.NewForbiddenError("only the owner can delete an item")
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.directory.Invalidate(ctx, itemID)

	s.logger.Info("item deleted", zap.Int64("item_id", itemID))
	return nil
}

func (s *ItemService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.directory.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFoundError("User", userID)
	}
	return nil
}

func (s *ItemService) attachBookings(ctx context.Context, dto *ItemDTO, now time.Time) error {
	last, err := s.bookings.FindLastForItem(ctx, dto.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.FindNextForItem(ctx, dto.ID, now)
	if err != nil {
		return err
	}
	dto.LastBooking = toBookingShortDTO(last)
	dto.NextBooking = toBookingShortDTO(next)
	return nil
}

func (s *ItemService) attachComments(ctx context.Context, dtos []*ItemDTO) error {
	ids := make([]int64, len(dtos))
	for i, d := range dtos {
		ids[i] = d.ID
	}
	byItem, err := s.comments.FindByItemIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, d := range dtos {
		d.Comments = toCommentDTOs(byItem[d.ID])
	}
	return nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		Comments:    []CommentDTO{},
	}
}

func toBookingShortDTO(bk *bookingDomain.Booking) *BookingShortDTO {
	if bk == nil {
		return nil
	}
	return &BookingShortDTO{ID: bk.ID(), BookerID: bk.BookerID(), Start: bk.Start(), End: bk.End()}
}
