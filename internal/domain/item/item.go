package item

import (
	"strings"
	"time"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// Item is the aggregate root for a listed rentable thing.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// Snapshot is the read-only view of an item that booking decisions depend on.
type Snapshot struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Patch carries a partial update. Nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

// NewItem creates an item with validated fields.
func NewItem(ownerID int64, name, description string, available bool, now time.Time) (*Item, error) {
	if ownerID <= 0 {
		return nil, apperror.NewValidationError("owner ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("item name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.NewValidationError("item description is required")
	}

	now = now.UTC()
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool, version int64, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() int64            { return i.id }
func (i *Item) OwnerID() int64       { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) Version() int64       { return i.version }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// --- Behavior ---

// AssignID records the identifier generated by the store.
func (i *Item) AssignID(id int64) { i.id = id }

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// Snapshot returns the directory view of the item.
func (i *Item) Snapshot() Snapshot {
	return Snapshot{ID: i.id, OwnerID: i.ownerID, Name: i.name, Available: i.available}
}

// Apply applies a partial update. Blank strings are rejected rather than ignored.
func (i *Item) Apply(p Patch, now time.Time) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return apperror.NewValidationError("item name must not be blank")
		}
		i.name = name
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		if description == "" {
			return apperror.NewValidationError("item description must not be blank")
		}
		i.description = description
	}
	if p.Available != nil {
		i.available = *p.Available
	}
	i.version++
	i.updatedAt = now.UTC()
	return nil
}
