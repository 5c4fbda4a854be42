package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/payment"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type State string

const (
	StateDraft                State = "draft"
	StateValidating           State = "validating"
	StateSubmitting           State = "submitting"
	StatePendingOnlinePayment State = "pending_online_payment"
	StateCapturing            State = "capturing"
	StateConfirmed            State = "confirmed"
	StatePaymentFailed        State = "payment_failed"
)

const (
	noticeConfirmedAtProperty = "Booking confirmed! Please pay at the hotel."
	noticeAwaitingPayment     = "Booking created! Complete payment with PayPal below."
	noticePaymentConfirmed    = "Payment successful! Your booking is confirmed."
	noticePaymentFailed       = "Payment failed. Please try again."
	noticePaymentCancelled    = "Payment was cancelled."
	noticeReconcileFailed     = "Payment completed but there was an issue updating your booking. Please contact support."
)

// IdentityProvider returns the authenticated caller, or nil for an anonymous one.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) *domain.Identity
}

type FlowOption func(*Flow)

func WithLogger(log *logrus.Logger) FlowOption {
	return func(f *Flow) {
		f.log = log
	}
}

func WithCurrency(currency string) FlowOption {
	return func(f *Flow) {
		f.currency = currency
	}
}

// Flow is one booking attempt: a draft request for a hotel, driven through submission and,
// for online payment, through order creation and capture. At most one submit or capture
// runs at a time; overlapping calls fail with ErrSubmitInProgress.
type Flow struct {
	bookings repository.BookingRepository
	payments payment.Provider
	identity IdentityProvider
	log      *logrus.Logger
	currency string

	mu      sync.Mutex
	busy    bool
	state   State
	hotel   domain.Hotel
	request Request
	booking *domain.Booking
	notice  string
	err     error
}

// NewFlow returns a flow in the Draft state. payments may be nil, in which case only the
// pay-at-property path is offered.
func NewFlow(bookings repository.BookingRepository, payments payment.Provider, identity IdentityProvider, opts ...FlowOption) *Flow {
	f := &Flow{
		bookings: bookings,
		payments: payments,
		identity: identity,
		log:      logrus.StandardLogger(),
		state:    StateDraft,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Initialize resets the flow to a fresh Draft for hotel. No collaborator is called.
func (f *Flow) Initialize(hotel domain.Hotel, contact *Contact, dates *SearchDates) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hotel = hotel
	f.request = NewRequest(hotel, contact, dates)
	f.state = StateDraft
	f.booking = nil
	f.notice = ""
	f.err = nil
}

// Update edits the draft request. It is only allowed while the flow is a Draft.
func (f *Flow) Update(edit func(*Request)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrSubmitInProgress
	}
	if f.state != StateDraft {
		return ErrInvalidState
	}
	edit(&f.request)
	// the edit itself succeeds; Err reports what is still wrong with the draft
	f.err = f.validateLocked()
	return nil
}

func (f *Flow) Request() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.request
}

func (f *Flow) Pricing() Pricing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ComputePricing(f.request, f.hotel.PricePerNight)
}

// Validate re-checks the draft and reports the first violated rule.
func (f *Flow) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Flow) validateLocked() error {
	prev := f.state
	f.state = StateValidating
	err := Validate(f.request, f.hotel, ComputePricing(f.request, f.hotel.PricePerNight))
	f.state = prev
	return err
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Notice is the last user-facing message of the flow.
func (f *Flow) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Err is the error of the last failed step, if any.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) Booking() *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.booking == nil {
		return nil
	}
	b := *f.booking
	return &b
}

// Submit persists the draft as a booking. Pay-at-property bookings end Confirmed; online
// bookings end PendingOnlinePayment and wait for Approve.
func (f *Flow) Submit(ctx context.Context, method PaymentMethod) (*domain.Booking, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if f.state != StateDraft {
		f.mu.Unlock()
		return nil, ErrInvalidState
	}
	identity := f.identity.CurrentIdentity(ctx)
	if identity == nil {
		f.mu.Unlock()
		return nil, ErrAuthenticationRequired
	}
	if err := f.validateLocked(); err != nil {
		f.err = err
		f.mu.Unlock()
		return nil, err
	}
	if !method.Valid() {
		f.mu.Unlock()
		return nil, ErrUnknownPaymentMethod
	}
	if method == PaymentMethodOnline && f.payments == nil {
		f.mu.Unlock()
		return nil, ErrOnlinePaymentUnavailable
	}

	f.busy = true
	f.state = StateSubmitting
	f.err = nil
	req := f.request.Normalized()
	hotel := f.hotel
	f.mu.Unlock()

	status := domain.BookingStatusPending
	if method == PaymentMethodPayAtProperty {
		status = domain.BookingStatusConfirmed
	}
	draft := domain.BookingDraft{
		UserID:        identity.UserID,
		HotelID:       hotel.ID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		CheckInDate:   req.CheckIn,
		CheckOutDate:  req.CheckOut,
		Guests:        req.Guests,
		Rooms:         req.Rooms,
		RoomType:      req.RoomType,
		TotalAmount:   ComputePricing(req, hotel.PricePerNight).TotalAmount,
		PaymentStatus: domain.PaymentStatusPending,
		BookingStatus: status,
	}

	created, err := f.bookings.Insert(ctx, draft)
	if err != nil {
		return nil, f.abort(StateDraft, &PersistenceError{Op: "create booking", Err: err})
	}

	if method == PaymentMethodOnline {
		f.complete(StatePendingOnlinePayment, created, noticeAwaitingPayment)
		return f.Booking(), nil
	}

	pending := domain.PaymentStatusPending
	confirmed := domain.BookingStatusConfirmed
	patch := domain.BookingPatch{PaymentStatus: &pending, BookingStatus: &confirmed}
	if err := f.bookings.Update(ctx, created.ID, patch); err != nil {
		return nil, f.abort(StateDraft, &PersistenceError{Op: "confirm booking", Err: err})
	}
	patch.Apply(created)

	f.complete(StateConfirmed, created, noticeConfirmedAtProperty)
	return f.Booking(), nil
}

// Resume re-enters the online payment sub-state for hotel, e.g. when a later request
// continues an attempt started by an earlier one. booking may be nil when only the capture
// step is needed.
func (f *Flow) Resume(hotel domain.Hotel, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrSubmitInProgress
	}
	if booking != nil && booking.PaymentStatus != domain.PaymentStatusPending {
		return ErrInvalidState
	}
	f.hotel = hotel
	f.booking = nil
	if booking != nil {
		b := *booking
		f.booking = &b
		f.request = Request{
			GuestName:  b.GuestName,
			GuestEmail: b.GuestEmail,
			GuestPhone: b.GuestPhone,
			CheckIn:    b.CheckInDate,
			CheckOut:   b.CheckOutDate,
			Guests:     b.Guests,
			Rooms:      b.Rooms,
			RoomType:   b.RoomType,
		}
	}
	f.state = StatePendingOnlinePayment
	f.notice = ""
	f.err = nil
	return nil
}

// CreateOrder opens a payment order for the booking total.
func (f *Flow) CreateOrder(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return "", ErrSubmitInProgress
	}
	if !f.awaitingPaymentLocked() {
		f.mu.Unlock()
		return "", ErrInvalidState
	}
	if f.payments == nil {
		f.mu.Unlock()
		return "", ErrOnlinePaymentUnavailable
	}
	if f.identity.CurrentIdentity(ctx) == nil {
		f.mu.Unlock()
		return "", ErrAuthenticationRequired
	}

	order := payment.OrderRequest{
		Amount:      ComputePricing(f.request, f.hotel.PricePerNight).TotalAmount,
		Currency:    f.currency,
		Description: fmt.Sprintf("Hotel booking for %s", f.hotel.Name),
	}
	if f.booking != nil {
		order.Amount = f.booking.TotalAmount
		order.ReferenceID = f.booking.ID
	}
	f.busy = true
	f.mu.Unlock()

	orderID, err := f.payments.CreateOrder(ctx, order)
	if err != nil {
		f.log.WithError(err).WithField("booking_id", order.ReferenceID).Error("create payment order failed")
		return "", f.fail(&PaymentError{Message: noticePaymentFailed, Err: err})
	}

	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
	return orderID, nil
}

// Approve handles the buyer's approval: the order is captured, and a pending booking of the
// caller for this hotel is marked paid and confirmed.
//
// The captured order's reference id selects the booking. Orders without one fall back to
// the newest pending booking for (user, hotel).
func (f *Flow) Approve(ctx context.Context, orderID string) (*domain.Booking, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !f.awaitingPaymentLocked() {
		f.mu.Unlock()
		return nil, ErrInvalidState
	}
	if f.payments == nil {
		f.mu.Unlock()
		return nil, ErrOnlinePaymentUnavailable
	}
	identity := f.identity.CurrentIdentity(ctx)
	if identity == nil {
		f.mu.Unlock()
		return nil, ErrAuthenticationRequired
	}
	f.busy = true
	f.state = StateCapturing
	f.err = nil
	hotel := f.hotel
	f.mu.Unlock()

	logger := f.log.WithFields(logrus.Fields{"order_id": orderID, "hotel_id": hotel.ID, "user_id": identity.UserID})

	capture, err := f.payments.CaptureOrder(ctx, orderID)
	if err != nil {
		logger.WithError(err).Error("payment capture failed")
		return nil, f.fail(&PaymentError{Message: noticePaymentFailed, Err: err})
	}

	pending, err := f.bookings.FindPending(ctx, identity.UserID, hotel.ID)
	if err != nil {
		logger.WithError(err).Error("payment captured but booking lookup failed")
		return nil, f.failWithNotice(&PersistenceError{Op: "find pending booking", Err: err}, noticeReconcileFailed)
	}
	if len(pending) == 0 {
		logger.Warn("payment captured but no pending booking matched")
		return nil, f.failWithNotice(ErrNoPendingBooking, noticeReconcileFailed)
	}

	target, ok := reconcileTarget(pending, capture.ReferenceID)
	if !ok {
		logger.WithField("reference_id", capture.ReferenceID).Warn("captured order references a booking that is not pending for this hotel")
		return nil, f.failWithNotice(ErrNoPendingBooking, noticeReconcileFailed)
	}
	if capture.Amount > 0 && math.Abs(capture.Amount-target.TotalAmount) >= 0.01 {
		logger.WithFields(logrus.Fields{
			"booking_id":      target.ID,
			"captured_amount": capture.Amount,
			"total_amount":    target.TotalAmount,
		}).Warn("captured amount does not match booking total")
	}

	capturedID := capture.ID
	completed := domain.PaymentStatusCompleted
	confirmed := domain.BookingStatusConfirmed
	patch := domain.BookingPatch{PaymentStatus: &completed, BookingStatus: &confirmed, PaymentID: &capturedID}
	if err := f.bookings.Update(ctx, target.ID, patch); err != nil {
		logger.WithError(err).WithField("booking_id", target.ID).Error("payment captured but booking update failed")
		return nil, f.failWithNotice(&PersistenceError{Op: "complete payment", Err: err}, noticeReconcileFailed)
	}
	patch.Apply(&target)

	logger.WithField("booking_id", target.ID).Info("payment captured")
	f.complete(StateConfirmed, &target, noticePaymentConfirmed)
	return f.Booking(), nil
}

// reconcileTarget picks the booking referenced by the order, falling back to the
// most recent pending booking when the order carries no reference.
func reconcileTarget(pending []domain.Booking, referenceID string) (domain.Booking, bool) {
	if referenceID == "" {
		return pending[0], true
	}
	for _, b := range pending {
		if b.ID == referenceID {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// Fail records a payment provider error reported by the checkout widget.
func (f *Flow) Fail(cause error) error {
	if cause == nil {
		cause = errors.New("payment provider error")
	}
	return f.report(&PaymentError{Message: noticePaymentFailed, Err: cause})
}

// Cancel records that the buyer closed the checkout without approving.
func (f *Flow) Cancel() error {
	return f.report(&PaymentError{Cancelled: true, Message: noticePaymentCancelled})
}

func (f *Flow) report(perr *PaymentError) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrSubmitInProgress
	}
	if !f.awaitingPaymentLocked() {
		return ErrInvalidState
	}
	f.state = StatePaymentFailed
	f.notice = perr.Message
	f.err = perr
	return perr
}

func (f *Flow) awaitingPaymentLocked() bool {
	return f.state == StatePendingOnlinePayment || f.state == StatePaymentFailed
}

func (f *Flow) complete(state State, booking *domain.Booking, notice string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.state = state
	f.booking = booking
	f.notice = notice
	f.err = nil
}

// abort ends an in-flight step without a state transition beyond returning to state.
func (f *Flow) abort(state State, err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.state = state
	f.notice = err.Error()
	f.err = err
	if !IsValidation(err) {
		f.log.WithError(err).WithField("hotel_id", f.hotel.ID).Error("booking submit failed")
	}
	return err
}

func (f *Flow) fail(err *PaymentError) error {
	return f.failWithNotice(err, err.Message)
}

func (f *Flow) failWithNotice(err error, notice string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.state = StatePaymentFailed
	f.notice = notice
	f.err = err
	return err
}
