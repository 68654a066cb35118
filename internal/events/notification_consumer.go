package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
)

// Notifier delivers a booking notification to one user.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, eventType string, evt bookingDomain.LifecycleEvent) error
}

// NotificationConsumer listens to booking events and notifies the counterpart of each change.
type NotificationConsumer struct {
	consumer *kafka.Consumer
	notifier Notifier
	logger   *zap.Logger
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(
	brokers []string,
	groupID string,
	notifier Notifier,
	logger *zap.Logger,
) *NotificationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, bookingDomain.TopicBookingEvents, logger)
	return &NotificationConsumer{
		consumer: consumer,
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *NotificationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *NotificationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case bookingDomain.EventBookingCreated,
		bookingDomain.EventBookingApproved,
		bookingDomain.EventBookingRejected,
		bookingDomain.EventBookingCanceled:
		return c.handleLifecycleEvent(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *NotificationConsumer) handleLifecycleEvent(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt bookingDomain.LifecycleEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse booking event data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	recipient := evt.Recipient(cloudEvent.Type)
	if err := c.notifier.Notify(ctx, recipient, cloudEvent.Type, evt); err != nil {
		c.logger.Error("failed to notify about booking event",
			zap.Int64("booking_id", evt.BookingID),
			zap.Int64("recipient_id", recipient),
			zap.Error(err),
		)
		return err
	}
	return nil
}
