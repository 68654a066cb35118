package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit-rental/service-booking/internal/domain/booking"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipientID int64, eventType string, evt bookingDomain.LifecycleEvent) error {
	args := m.Called(ctx, recipientID, eventType, evt)
	return args.Error(0)
}

func newTestConsumer(notifier Notifier) *NotificationConsumer {
	return &NotificationConsumer{notifier: notifier, logger: zap.NewNop()}
}

func message(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-booking", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: bookingDomain.TopicBookingEvents, Value: raw}
}

func lifecycleEvent() bookingDomain.LifecycleEvent {
	return bookingDomain.LifecycleEvent{
		BookingID: 5, ItemID: 10, ItemName: "Drill", OwnerID: 1, BookerID: 2,
		Status: "WAITING", Start: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotificationConsumer_RoutesToCounterpart(t *testing.T) {
	tests := []struct {
		eventType string
		recipient int64
	}{
		{bookingDomain.EventBookingCreated, 1},
		{bookingDomain.EventBookingCanceled, 1},
		{bookingDomain.EventBookingApproved, 2},
		{bookingDomain.EventBookingRejected, 2},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			notifier := &MockNotifier{}
			notifier.On("Notify", mock.Anything, tt.recipient, tt.eventType,
				mock.MatchedBy(func(e bookingDomain.LifecycleEvent) bool { return e.BookingID == 5 })).
				Return(nil).Once()

			err := newTestConsumer(notifier).handleMessage(context.Background(), message(t, tt.eventType, lifecycleEvent()))
			require.NoError(t, err)
			notifier.AssertExpectations(t)
		})
	}
}

func TestNotificationConsumer_SkipsMalformedAndUnknown(t *testing.T) {
	notifier := &MockNotifier{}
	c := newTestConsumer(notifier)
	ctx := context.Background()

	assert.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("not json")}))
	assert.NoError(t, c.handleMessage(ctx, message(t, "item.updated", map[string]int{"id": 1})))
	assert.NoError(t, c.handleMessage(ctx, message(t, bookingDomain.EventBookingCreated, "not an object")))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationConsumer_NotifierErrorIsReturned(t *testing.T) {
	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, int64(1), bookingDomain.EventBookingCreated, mock.Anything).
		Return(errors.New("smtp down")).Once()

	err := newTestConsumer(notifier).handleMessage(context.Background(), message(t, bookingDomain.EventBookingCreated, lifecycleEvent()))
	assert.Error(t, err)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(zap.NewNop()).Notify(context.Background(), 1, bookingDomain.EventBookingCreated, lifecycleEvent()))
}
