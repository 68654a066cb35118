package application

import (
	"context"
	"time"

	"github.com/shareit-rental/service-booking/internal/domain/item"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
)

// Clock supplies the instant an operation is evaluated at. It is sampled once per operation.
type Clock func() time.Time

// SystemClock reads the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// EventPublisher publishes CloudEvents. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// ItemCache stores item snapshots between requests.
type ItemCache interface {
	GetItem(ctx context.Context, itemID int64) (*item.Snapshot, error)
	SetItem(ctx context.Context, snap item.Snapshot) error
	InvalidateItem(ctx context.Context, itemID int64) error
}

// DecisionLocker serializes decisions on one booking across replicas.
type DecisionLocker interface {
	// AcquireDecisionLock returns a release token, or "" when the lock is held elsewhere.
	AcquireDecisionLock(ctx context.Context, bookingID int64, ttl time.Duration) (string, error)
	ReleaseDecisionLock(ctx context.Context, bookingID int64, token string) error
}

// Directory answers the item and user lookups booking decisions depend on.
type Directory interface {
	GetItem(ctx context.Context, itemID int64) (item.Snapshot, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}
