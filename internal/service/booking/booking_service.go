package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/metrics"
	"github.com/Domenick1991/hotelbooking/internal/payment"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Draft(ctx context.Context, hotelID string, dates *SearchDates) (*DraftView, error)
	Quote(ctx context.Context, hotelID string, req Request) (*Quote, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*Result, error)
	CreatePaymentOrder(ctx context.Context, hotelID string) (string, error)
	CapturePayment(ctx context.Context, hotelID, orderID string) (*Result, error)
	AbandonPayment(ctx context.Context, hotelID string, cancelled bool, reason string) (*Result, error)
	ListMyBookings(ctx context.Context) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
}

// Locker guards a (user, hotel) pair against overlapping submit or capture requests
// arriving on different connections.
type Locker interface {
	AcquireSubmitLock(ctx context.Context, userID, hotelID string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseSubmitLock(ctx context.Context, userID, hotelID, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	hotels             repository.HotelRepository
	profiles           repository.ProfileRepository
	locker             Locker
	producer           Producer
	payments           payment.Provider
	identity           IdentityProvider
	log                *logrus.Logger
	eventsTopic        string
	notificationsTopic string
	currency           string
	lockTTL            time.Duration
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithEventsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.eventsTopic = topic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithPayments(p payment.Provider, currency string) BookingServiceOption {
	return func(s *BookingService) {
		s.payments = p
		s.currency = currency
	}
}

func WithServiceLogger(log *logrus.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	hotels repository.HotelRepository,
	profiles repository.ProfileRepository,
	locker Locker,
	producer Producer,
	identity IdentityProvider,
	lockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		bookings: bookings,
		hotels:   hotels,
		profiles: profiles,
		locker:   locker,
		producer: producer,
		identity: identity,
		lockTTL:  lockTTL,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateBookingInput struct {
	HotelID       string        `json:"hotel_id"`
	Request       Request       `json:"request"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// Result is the outcome of a step of the booking flow as shown to the guest.
type Result struct {
	Booking *domain.Booking `json:"booking,omitempty"`
	State   State           `json:"state"`
	Notice  string          `json:"notice,omitempty"`
}

// DraftView is an initialized booking form for a hotel.
type DraftView struct {
	Hotel          domain.Hotel    `json:"hotel"`
	Request        Request         `json:"request"`
	Pricing        Pricing         `json:"pricing"`
	Bookable       bool            `json:"bookable"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

// Quote is the price of a request together with the first validation problem, if any.
type Quote struct {
	Pricing
	Valid   bool   `json:"valid"`
	Problem string `json:"problem,omitempty"`
	Field   string `json:"field,omitempty"`
}

func (s *BookingService) newFlow() *Flow {
	return NewFlow(s.bookings, s.payments, s.identity, WithLogger(s.log), WithCurrency(s.currency))
}

func (s *BookingService) paymentMethods() []PaymentMethod {
	methods := []PaymentMethod{PaymentMethodPayAtProperty}
	if s.payments != nil {
		methods = append(methods, PaymentMethodOnline)
	}
	return methods
}

// Draft initializes a booking form for hotelID, prefilled from the caller's profile when
// one is available and from the search dates.
func (s *BookingService) Draft(ctx context.Context, hotelID string, dates *SearchDates) (*DraftView, error) {
	hotel, err := s.getHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	var contact *Contact
	if identity := s.identity.CurrentIdentity(ctx); identity != nil {
		contact = &Contact{Email: identity.Email}
		if s.profiles != nil {
			profile, err := s.profiles.Get(ctx, identity.UserID)
			switch {
			case err == nil:
				contact = &Contact{Name: profile.Name, Email: profile.Email, Phone: profile.Phone}
			case !errors.Is(err, repository.ErrNotFound):
				s.log.WithError(err).WithField("user_id", identity.UserID).Warn("profile prefill failed")
			}
		}
	}

	flow := s.newFlow()
	flow.Initialize(*hotel, contact, dates)
	return &DraftView{
		Hotel:          *hotel,
		Request:        flow.Request(),
		Pricing:        flow.Pricing(),
		Bookable:       len(hotel.RoomTypes) > 0,
		PaymentMethods: s.paymentMethods(),
	}, nil
}

func (s *BookingService) Quote(ctx context.Context, hotelID string, req Request) (*Quote, error) {
	hotel, err := s.getHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	pricing := ComputePricing(req, hotel.PricePerNight)
	quote := &Quote{Pricing: pricing, Valid: true}
	var verr *ValidationError
	if errors.As(Validate(req, *hotel, pricing), &verr) {
		quote.Valid = false
		quote.Problem = verr.Message
		quote.Field = verr.Field
	}
	return quote, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*Result, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, ErrAuthenticationRequired
	}

	release, err := s.lock(ctx, identity.UserID, input.HotelID)
	if err != nil {
		return nil, err
	}
	defer release()

	hotel, err := s.getHotel(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}

	flow := s.newFlow()
	flow.Initialize(*hotel, nil, nil)
	if err := flow.Update(func(r *Request) { *r = input.Request }); err != nil {
		return nil, err
	}

	booking, err := flow.Submit(ctx, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(string(input.PaymentMethod)).Inc()
	s.log.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"hotel_id":       hotel.ID,
		"user_id":        identity.UserID,
		"payment_method": input.PaymentMethod,
		"total_amount":   booking.TotalAmount,
	}).Info("booking created")

	s.publish(ctx, kafka.EventBookingCreated, hotel, booking)
	if booking.BookingStatus == domain.BookingStatusConfirmed {
		s.publish(ctx, kafka.EventBookingConfirmed, hotel, booking)
	}
	return &Result{Booking: booking, State: flow.State(), Notice: flow.Notice()}, nil
}

// CreatePaymentOrder opens a payment order for the caller's most recent pending booking
// at hotelID.
func (s *BookingService) CreatePaymentOrder(ctx context.Context, hotelID string) (string, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return "", ErrAuthenticationRequired
	}

	hotel, err := s.getHotel(ctx, hotelID)
	if err != nil {
		return "", err
	}

	pending, err := s.bookings.FindPending(ctx, identity.UserID, hotel.ID)
	if err != nil {
		return "", &PersistenceError{Op: "find pending booking", Err: err}
	}
	if len(pending) == 0 {
		return "", ErrNoPendingBooking
	}

	flow := s.newFlow()
	if err := flow.Resume(*hotel, &pending[0]); err != nil {
		return "", err
	}
	orderID, err := flow.CreateOrder(ctx)
	if err != nil {
		metrics.PaymentFailures.WithLabelValues("create_order").Inc()
		return "", err
	}
	return orderID, nil
}

func (s *BookingService) CapturePayment(ctx context.Context, hotelID, orderID string) (*Result, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, ErrAuthenticationRequired
	}

	release, err := s.lock(ctx, identity.UserID, hotelID)
	if err != nil {
		return nil, err
	}
	defer release()

	hotel, err := s.getHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.Resume(*hotel, nil); err != nil {
		return nil, err
	}
	booking, err := flow.Approve(ctx, orderID)
	if err != nil {
		metrics.PaymentFailures.WithLabelValues("capture").Inc()
		return &Result{State: flow.State(), Notice: flow.Notice()}, err
	}

	metrics.PaymentsCaptured.Inc()
	s.publish(ctx, kafka.EventPaymentCompleted, hotel, booking)
	s.publish(ctx, kafka.EventBookingConfirmed, hotel, booking)
	return &Result{Booking: booking, State: flow.State(), Notice: flow.Notice()}, nil
}

// AbandonPayment records a checkout error or cancellation reported by the widget. The
// booking is left pending; no store call is made.
func (s *BookingService) AbandonPayment(ctx context.Context, hotelID string, cancelled bool, reason string) (*Result, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, ErrAuthenticationRequired
	}

	hotel, err := s.getHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.Resume(*hotel, nil); err != nil {
		return nil, err
	}

	label := "cancelled"
	if cancelled {
		_ = flow.Cancel()
	} else {
		label = "provider_error"
		_ = flow.Fail(errors.New(reason))
	}
	metrics.PaymentFailures.WithLabelValues(label).Inc()
	s.log.WithFields(logrus.Fields{
		"hotel_id": hotel.ID,
		"user_id":  identity.UserID,
		"reason":   reason,
	}).Warnf("online payment %s", label)

	return &Result{State: flow.State(), Notice: flow.Notice()}, nil
}

func (s *BookingService) ListMyBookings(ctx context.Context) ([]domain.Booking, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, ErrAuthenticationRequired
	}

	bookings, err := s.bookings.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, &PersistenceError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

// CancelBooking marks one of the caller's bookings cancelled. Payment status is untouched.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, ErrAuthenticationRequired
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, &PersistenceError{Op: "get booking", Err: err}
	}
	if current.UserID != identity.UserID {
		return nil, ErrBookingNotFound
	}
	if current.BookingStatus == domain.BookingStatusCancelled {
		return current, nil
	}

	cancelled := domain.BookingStatusCancelled
	patch := domain.BookingPatch{BookingStatus: &cancelled}
	if err := s.bookings.Update(ctx, current.ID, patch); err != nil {
		return nil, &PersistenceError{Op: "cancel booking", Err: err}
	}
	patch.Apply(current)

	metrics.BookingsCancelled.Inc()
	s.publish(ctx, kafka.EventBookingCancelled, nil, current)
	return current, nil
}

func (s *BookingService) getHotel(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, &PersistenceError{Op: "get hotel", Err: err}
	}
	return hotel, nil
}

func (s *BookingService) lock(ctx context.Context, userID, hotelID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	token, ok, err := s.locker.AcquireSubmitLock(ctx, userID, hotelID, s.lockTTL)
	if err != nil {
		s.log.WithError(err).Warn("submit lock unavailable, continuing without it")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrSubmitInProgress
	}
	return func() {
		if err := s.locker.ReleaseSubmitLock(context.WithoutCancel(ctx), userID, hotelID, token); err != nil {
			s.log.WithError(err).Warn("release submit lock failed")
		}
	}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, hotel *domain.Hotel, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		BookingID:     booking.ID,
		HotelID:       booking.HotelID,
		UserID:        booking.UserID,
		GuestName:     booking.GuestName,
		Email:         booking.GuestEmail,
		CheckIn:       booking.CheckInDate,
		CheckOut:      booking.CheckOutDate,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: string(booking.PaymentStatus),
		BookingStatus: string(booking.BookingStatus),
		OccurredAt:    s.now().UTC(),
	}
	if hotel != nil {
		event.HotelName = hotel.Name
	}

	logger := s.log.WithFields(logrus.Fields{"event": eventType, "booking_id": booking.ID})
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		logger.WithError(err).Warn("publish booking event failed")
		return
	}
	metrics.EventsPublished.WithLabelValues(eventType).Inc()
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			logger.WithError(err).Warn("publish booking notification failed")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
