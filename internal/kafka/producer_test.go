package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestProducer_Publish(t *testing.T) {
	writer := &MockWriter{}
	producer := &Producer{writer: writer, log: quietLogger()}
	ctx := context.Background()

	event := BookingEvent{ID: "evt-1", Type: EventBookingCreated, BookingID: "b-1", TotalAmount: 20000}

	writer.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || msgs[0].Topic != "booking-events" || string(msgs[0].Key) != "b-1" {
			return false
		}
		var decoded BookingEvent
		return json.Unmarshal(msgs[0].Value, &decoded) == nil && decoded.Type == EventBookingCreated
	})).Return(nil).Once()

	err := producer.Publish(ctx, "booking-events", "b-1", event)

	assert.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestProducer_Publish_WriteError(t *testing.T) {
	writer := &MockWriter{}
	producer := &Producer{writer: writer, log: quietLogger()}
	ctx := context.Background()

	writer.On("WriteMessages", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	err := producer.Publish(ctx, "booking-events", "b-1", BookingEvent{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestBookingEventHandler(t *testing.T) {
	var got []BookingEvent
	handler := BookingEventHandler(quietLogger(), func(_ context.Context, e BookingEvent) error {
		got = append(got, e)
		return nil
	})

	payload, _ := json.Marshal(BookingEvent{Type: EventPaymentCompleted, BookingID: "b-2"})
	assert.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))
	assert.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("not json")}))

	require.Len(t, got, 1)
	assert.Equal(t, "b-2", got[0].BookingID)
}
