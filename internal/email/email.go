package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Message is a rendered notification email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender renders booking events into emails. Delivery is logged; no mail relay is wired.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, ok := Render(event)
	if !ok {
		s.log.WithFields(logrus.Fields{"event": event.Type, "booking_id": event.BookingID}).Debug("no email for event type")
		return nil
	}
	if msg.To == "" {
		s.log.WithField("booking_id", event.BookingID).Warn("booking event without guest email")
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"to":         msg.To,
		"subject":    msg.Subject,
		"booking_id": event.BookingID,
	}).Info("send email")
	return nil
}

// Render builds the email for event. ok is false for event types that are not mailed.
func Render(event kafka.BookingEvent) (Message, bool) {
	hotel := event.HotelName
	if hotel == "" {
		hotel = "your hotel"
	}
	stay := fmt.Sprintf("%s to %s", event.CheckIn, event.CheckOut)

	var subject, body string
	switch event.Type {
	case kafka.EventBookingConfirmed:
		subject = fmt.Sprintf("Your booking at %s is confirmed", hotel)
		body = fmt.Sprintf("Hi %s,\n\nYour stay at %s (%s) is confirmed. Total: %.2f.", event.GuestName, hotel, stay, event.TotalAmount)
		if event.PaymentStatus != "completed" {
			body += " Please pay at the hotel."
		}
	case kafka.EventPaymentCompleted:
		subject = "Payment received"
		body = fmt.Sprintf("Hi %s,\n\nWe received your payment of %.2f for %s (%s).", event.GuestName, event.TotalAmount, hotel, stay)
	case kafka.EventBookingCancelled:
		subject = "Your booking was cancelled"
		body = fmt.Sprintf("Hi %s,\n\nYour booking %s for %s has been cancelled.", event.GuestName, event.BookingID, stay)
	default:
		return Message{}, false
	}
	return Message{To: event.Email, Subject: subject, Body: body}, true
}
