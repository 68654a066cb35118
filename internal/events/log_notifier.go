package events

import (
	"context"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
)

// LogNotifier writes notifications as structured log lines.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifications")}
}

// Notify logs one notification.
func (n *LogNotifier) Notify(_ context.Context, recipientID int64, eventType string, evt bookingDomain.LifecycleEvent) error {
	n.logger.Info("booking notification",
		zap.Int64("recipient_id", recipientID),
		zap.String("event_type", eventType),
		zap.Int64("booking_id", evt.BookingID),
		zap.String("item_name", evt.ItemName),
		zap.String("status", evt.Status),
		zap.Time("start", evt.Start),
		zap.Time("end", evt.End),
	)
	return nil
}
