package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shareit-rental/service-booking/internal/domain/item"
	"github.com/shareit-rental/service-booking/internal/domain/user"
)

// CachedDirectory serves item snapshots through an optional read-through cache.
// Cache failures are logged and fall back to the repository.
type CachedDirectory struct {
	items  item.ItemRepository
	users  user.UserRepository
	cache  ItemCache
	logger *zap.Logger
}

// NewCachedDirectory creates a directory. cache may be nil.
func NewCachedDirectory(items item.ItemRepository, users user.UserRepository, cache ItemCache, logger *zap.Logger) *CachedDirectory {
	return &CachedDirectory{items: items, users: users, cache: cache, logger: logger}
}

// GetItem returns the item's snapshot or a NotFound error.
func (d *CachedDirectory) GetItem(ctx context.Context, itemID int64) (item.Snapshot, error) {
	if d.cache != nil {
		snap, err := d.cache.GetItem(ctx, itemID)
		if err != nil {
			d.logger.Warn("item cache read failed", zap.Int64("item_id", itemID), zap.Error(err))
		} else if snap != nil {
			return *snap, nil
		}
	}

	it, err := d.items.FindByID(ctx, itemID)
	if err != nil {
		return item.Snapshot{}, err
	}
	snap := it.Snapshot()

	if d.cache != nil {
		if err := d.cache.SetItem(ctx, snap); err != nil {
			d.logger.Warn("item cache write failed", zap.Int64("item_id", itemID), zap.Error(err))
		}
	}
	return snap, nil
}

// UserExists reports whether a user is registered.
func (d *CachedDirectory) UserExists(ctx context.Context, userID int64) (bool, error) {
	ok, err := d.users.ExistsByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return ok, nil
}

// Invalidate drops a cached item snapshot after the item changed.
func (d *CachedDirectory) Invalidate(ctx context.Context, itemID int64) {
	if d.cache == nil {
		return
	}
	if err := d.cache.InvalidateItem(ctx, itemID); err != nil {
		d.logger.Warn("item cache invalidation failed", zap.Int64("item_id", itemID), zap.Error(err))
	}
}
