package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type quoteRequest struct {
	HotelID string          `json:"hotel_id" binding:"required"`
	Request booking.Request `json:"request"`
}

type captureRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type abandonRequest struct {
	Cancelled bool   `json:"cancelled"`
	Reason    string `json:"reason"`
}

type orderResponse struct {
	OrderID string `json:"order_id"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.listMine)
	router.POST("", h.create)
	router.DELETE("/:id", h.cancel)
	router.GET("/draft/:hotel_id", h.draft)
	router.POST("/quote", h.quote)
	router.POST("/payments/:hotel_id/order", h.createOrder)
	router.POST("/payments/:hotel_id/capture", h.capture)
	router.POST("/payments/:hotel_id/abandon", h.abandon)
}

func (h *BookingHandler) draft(c *gin.Context) {
	var dates *booking.SearchDates
	if checkIn, checkOut := c.Query("check_in"), c.Query("check_out"); checkIn != "" || checkOut != "" || c.Query("guests") != "" {
		dates = &booking.SearchDates{CheckIn: checkIn, CheckOut: checkOut}
		if raw := c.Query("guests"); raw != "" {
			guests, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests"})
				return
			}
			dates.Guests = guests
		}
	}

	view, err := h.service.Draft(c.Request.Context(), c.Param("hotel_id"), dates)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req.HotelID, req.Request)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *BookingHandler) create(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) createOrder(c *gin.Context) {
	orderID, err := h.service.CreatePaymentOrder(c.Request.Context(), c.Param("hotel_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse{OrderID: orderID})
}

func (h *BookingHandler) capture(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CapturePayment(c.Request.Context(), c.Param("hotel_id"), req.OrderID)
	if err != nil {
		if result != nil && result.Notice != "" {
			c.JSON(statusFor(err), gin.H{"error": result.Notice, "state": result.State})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) abandon(c *gin.Context) {
	var req abandonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.AbandonPayment(c.Request.Context(), c.Param("hotel_id"), req.Cancelled, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	bookings, err := h.service.ListMyBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
