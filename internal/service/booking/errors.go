package booking

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired   = errors.New("please log in to make a booking")
	ErrSubmitInProgress         = errors.New("a booking request is already in progress")
	ErrInvalidState             = errors.New("booking flow is not in a state that allows this action")
	ErrUnknownPaymentMethod     = errors.New("unknown payment method")
	ErrOnlinePaymentUnavailable = errors.New("online payment is not available, please choose pay at hotel")
	ErrHotelNotFound            = errors.New("hotel not found")
	ErrBookingNotFound          = errors.New("booking not found")
	ErrNoPendingBooking         = errors.New("no pending booking found for this hotel")
)

// ValidationError is a user-correctable problem with the booking request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError wraps a data store failure. Its message is the store's message verbatim.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PaymentError reports a payment provider failure or a buyer cancellation.
// The booking stays pending; only the capture step may be retried.
type PaymentError struct {
	Cancelled bool
	Message   string
	Err       error
}

func (e *PaymentError) Error() string {
	if e.Err != nil && !e.Cancelled {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}

func IsPayment(err error) bool {
	var p *PaymentError
	return errors.As(err, &p)
}
