package comment

import (
	"strings"
	"time"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// Comment is feedback left on an item by a user who rented it.
type Comment struct {
	id         int64
	itemID     int64
	authorID   int64
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a comment. The author name is denormalized for display.
func NewComment(itemID, authorID int64, authorName, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.NewValidationError("comment text is required")
	}
	if len(text) > 2000 {
		return nil, apperror.NewValidationError("comment text is too long")
	}
	return &Comment{
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Comment from persistence.
func Reconstruct(id, itemID, authorID int64, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

// Getters.
func (c *Comment) ID() int64            { return c.id }
func (c *Comment) ItemID() int64        { return c.itemID }
func (c *Comment) AuthorID() int64      { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// AssignID records the identifier generated by the store.
func (c *Comment) AssignID(id int64) { c.id = id }
