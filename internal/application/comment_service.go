package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-rental/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-rental/service-booking/internal/domain/item"
	userDomain "github.com/shareit-rental/service-booking/internal/domain/user"
	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// AddCommentRequest is the request DTO for commenting on an item.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// CommentDTO is the API response representation of a comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// CommentService lets past renters leave feedback on items.
type CommentService struct {
	comments commentDomain.CommentRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	bookings bookingDomain.BookingRepository
	clock    Clock
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments commentDomain.CommentRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	bookings bookingDomain.BookingRepository,
	clock Clock,
	logger *zap.Logger,
) *CommentService {
	if clock == nil {
		clock = SystemClock
	}
	return &CommentService{
		comments: comments,
		items:    items,
		users:    users,
		bookings: bookings,
		clock:    clock,
		logger:   logger,
	}
}

// AddComment records feedback from a user whose approved rental of the item has ended.
func (s *CommentService) AddComment(ctx context.Context, itemID, authorID int64, req AddCommentRequest) (*CommentDTO, error) {
	now := s.clock()

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	rented, err := s.bookings.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("user %d has no finished booking of item %d", authorID, itemID))
	}

	c, err := commentDomain.NewComment(itemID, authorID, author.Name(), req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.Int64("comment_id", c.ID()),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	result := toCommentDTO(c)
	return &result, nil
}

func toCommentDTO(c *commentDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*commentDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
