package booking

import (
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

type PaymentMethod string

const (
	PaymentMethodPayAtProperty PaymentMethod = "manual"
	PaymentMethodOnline        PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPayAtProperty || m == PaymentMethodOnline
}

// Request is the booking form as entered by the guest.
type Request struct {
	GuestName  string `json:"name"`
	GuestEmail string `json:"email"`
	GuestPhone string `json:"phone"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Rooms      int    `json:"number_of_rooms"`
	RoomType   string `json:"room_type"`
}

// Contact is known guest contact data used to prefill a request.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// SearchDates carries the dates and party size of the hotel search that led to the booking.
type SearchDates struct {
	CheckIn  string
	CheckOut string
	Guests   int
}

// NewRequest returns the default request for hotel: optional contact and search prefill,
// one room, and the hotel's first room type.
func NewRequest(hotel domain.Hotel, contact *Contact, dates *SearchDates) Request {
	req := Request{Guests: 1, Rooms: 1}
	if contact != nil {
		req.GuestName = contact.Name
		req.GuestEmail = contact.Email
		req.GuestPhone = contact.Phone
	}
	if dates != nil {
		req.CheckIn = dates.CheckIn
		req.CheckOut = dates.CheckOut
		if dates.Guests > 0 {
			req.Guests = dates.Guests
		}
	}
	if len(hotel.RoomTypes) > 0 {
		req.RoomType = hotel.RoomTypes[0]
	}
	return req
}

type rule struct {
	field   string
	message string
	failed  func(req Request, hotel domain.Hotel, p Pricing) bool
}

// rules are checked in order and only the first failure is reported.
var rules = []rule{
	{"name", "Please enter your full name", func(r Request, _ domain.Hotel, _ Pricing) bool { return blank(r.GuestName) }},
	{"email", "Please enter your email", func(r Request, _ domain.Hotel, _ Pricing) bool { return blank(r.GuestEmail) }},
	{"phone", "Please enter your phone number", func(r Request, _ domain.Hotel, _ Pricing) bool { return blank(r.GuestPhone) }},
	{"check_in", "Please select check-in date", func(r Request, _ domain.Hotel, _ Pricing) bool { return blank(r.CheckIn) }},
	{"check_out", "Please select check-out date", func(r Request, _ domain.Hotel, _ Pricing) bool { return blank(r.CheckOut) }},
	{"check_out", "Check-out date must be after check-in date", func(_ Request, _ domain.Hotel, p Pricing) bool { return p.Nights <= 0 }},
	{"guests", "Please enter at least one guest", func(r Request, _ domain.Hotel, _ Pricing) bool { return r.Guests < 1 }},
	{"number_of_rooms", "Please book at least one room", func(r Request, _ domain.Hotel, _ Pricing) bool { return r.Rooms < 1 }},
	{"room_type", "No rooms are available for this hotel", func(_ Request, h domain.Hotel, _ Pricing) bool { return len(h.RoomTypes) == 0 }},
	{"room_type", "Please select a room type", func(r Request, h domain.Hotel, _ Pricing) bool { return !h.HasRoomType(r.RoomType) }},
}

// Validate returns the first violated rule as a *ValidationError, or nil.
func Validate(req Request, hotel domain.Hotel, p Pricing) error {
	for _, r := range rules {
		if r.failed(req, hotel, p) {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}

// Normalized trims the contact fields the way they are persisted.
func (r Request) Normalized() Request {
	r.GuestName = strings.TrimSpace(r.GuestName)
	r.GuestEmail = strings.TrimSpace(r.GuestEmail)
	r.GuestPhone = strings.TrimSpace(r.GuestPhone)
	return r
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
