package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedEvent() kafka.BookingEvent {
	return kafka.BookingEvent{
		Type:          kafka.EventBookingConfirmed,
		BookingID:     "b-1",
		HotelName:     "Lakeview Residency",
		GuestName:     "Asha Rao",
		Email:         "asha@example.com",
		CheckIn:       "2024-06-01",
		CheckOut:      "2024-06-03",
		TotalAmount:   20000,
		PaymentStatus: "pending",
	}
}

func TestRender_Confirmed(t *testing.T) {
	msg, ok := Render(confirmedEvent())

	require.True(t, ok)
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "Your booking at Lakeview Residency is confirmed", msg.Subject)
	assert.Contains(t, msg.Body, "20000.00")
	assert.Contains(t, msg.Body, "Please pay at the hotel.")
}

func TestRender_ConfirmedAfterPayment(t *testing.T) {
	event := confirmedEvent()
	event.PaymentStatus = "completed"

	msg, ok := Render(event)

	require.True(t, ok)
	assert.NotContains(t, msg.Body, "Please pay at the hotel.")
}

func TestRender_SkipsCreated(t *testing.T) {
	event := confirmedEvent()
	event.Type = kafka.EventBookingCreated

	_, ok := Render(event)

	assert.False(t, ok)
}

func TestSender_Send(t *testing.T) {
	log, hook := test.NewNullLogger()
	sender := NewSender(log)

	require.NoError(t, sender.Send(context.Background(), confirmedEvent()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "asha@example.com", entry.Data["to"])
}

func TestSender_Send_NoEmail(t *testing.T) {
	log, hook := test.NewNullLogger()
	sender := NewSender(log)
	event := confirmedEvent()
	event.Email = ""

	require.NoError(t, sender.Send(context.Background(), event))

	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
