package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelbooking_bookings_created_total",
		Help: "The total number of bookings persisted, by payment method",
	}, []string{"payment_method"})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelbooking_bookings_cancelled_total",
		Help: "The total number of bookings cancelled by their owner",
	})
	PaymentsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelbooking_payments_captured_total",
		Help: "The total number of online payments captured and reconciled",
	})
	PaymentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelbooking_payment_failures_total",
		Help: "The total number of failed or cancelled online payments, by reason",
	}, []string{"reason"})
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelbooking_booking_events_published_total",
		Help: "The total number of booking events written to Kafka, by type",
	}, []string{"type"})
	NotificationsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelbooking_worker_notifications_processed_total",
		Help: "The total number of booking notifications handled by the worker",
	})
)
