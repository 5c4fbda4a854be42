package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/Domenick1991/hotelbooking/internal/service/profile"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var verr *booking.ValidationError
	var serr *hotels.StoreError
	switch {
	case errors.As(err, &verr), errors.Is(err, profile.ErrNameRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrSubmitInProgress), errors.Is(err, booking.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, booking.ErrHotelNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrNoPendingBooking),
		errors.Is(err, hotels.ErrHotelNotFound),
		errors.Is(err, profile.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrUnknownPaymentMethod), errors.Is(err, booking.ErrOnlinePaymentUnavailable):
		return http.StatusBadRequest
	case booking.IsPayment(err):
		return http.StatusPaymentRequired
	case errors.Is(err, hotels.ErrNotOwner):
		return http.StatusForbidden
	case booking.IsPersistence(err), errors.As(err, &serr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	var perr *booking.PaymentError
	if errors.As(err, &perr) {
		// the provider detail stays in the logs
		body["error"] = perr.Message
		body["cancelled"] = perr.Cancelled
	}
	c.JSON(statusFor(err), body)
}
