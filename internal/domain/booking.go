package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// BookingDraft is the insert payload of a booking. Guest contact fields are a
// snapshot taken at booking time.
type BookingDraft struct {
	UserID        string        `json:"user_id"`
	HotelID       string        `json:"hotel_id"`
	GuestName     string        `json:"user_name"`
	GuestEmail    string        `json:"user_email"`
	GuestPhone    string        `json:"user_phone"`
	CheckInDate   string        `json:"check_in_date"`
	CheckOutDate  string        `json:"check_out_date"`
	Guests        int           `json:"guests"`
	Rooms         int           `json:"number_of_rooms"`
	RoomType      string        `json:"room_type"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	BookingStatus BookingStatus `json:"booking_status"`
}

type Booking struct {
	ID string `json:"id"`
	BookingDraft
	PaymentID *string   `json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
	// Hotel is only filled by listings that join the hotel row.
	Hotel *HotelSummary `json:"hotels,omitempty"`
}

// HotelSummary is the part of a hotel shown next to a booking.
type HotelSummary struct {
	Name   string   `json:"name"`
	City   string   `json:"city"`
	State  string   `json:"state"`
	Images []string `json:"images"`
}

// BookingPatch lists the mutable fields of a booking; nil fields are left untouched.
type BookingPatch struct {
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
	BookingStatus *BookingStatus `json:"booking_status,omitempty"`
	PaymentID     *string        `json:"payment_id,omitempty"`
}

// Apply copies the set fields of p onto b.
func (p BookingPatch) Apply(b *Booking) {
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.BookingStatus != nil {
		b.BookingStatus = *p.BookingStatus
	}
	if p.PaymentID != nil {
		id := *p.PaymentID
		b.PaymentID = &id
	}
}
