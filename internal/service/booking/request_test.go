package booking

import (
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(req Request, hotel domain.Hotel) error {
	return Validate(req, hotel, ComputePricing(req, hotel.PricePerNight))
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validate(validRequest(), testHotel()))
}

func TestValidate_FirstViolatedRuleWins(t *testing.T) {
	testCases := []struct {
		name          string
		edit          func(r *Request, h *domain.Hotel)
		expectedField string
		expectedMsg   string
	}{
		{
			name:          "everything missing reports name",
			edit:          func(r *Request, _ *domain.Hotel) { *r = Request{} },
			expectedField: "name",
			expectedMsg:   "Please enter your full name",
		},
		{
			name:          "whitespace name",
			edit:          func(r *Request, _ *domain.Hotel) { r.GuestName = "   " },
			expectedField: "name",
			expectedMsg:   "Please enter your full name",
		},
		{
			name:          "email before phone",
			edit:          func(r *Request, _ *domain.Hotel) { r.GuestEmail = ""; r.GuestPhone = "" },
			expectedField: "email",
			expectedMsg:   "Please enter your email",
		},
		{
			name:          "phone",
			edit:          func(r *Request, _ *domain.Hotel) { r.GuestPhone = "" },
			expectedField: "phone",
			expectedMsg:   "Please enter your phone number",
		},
		{
			name:          "check-in before check-out",
			edit:          func(r *Request, _ *domain.Hotel) { r.CheckIn = ""; r.CheckOut = "" },
			expectedField: "check_in",
			expectedMsg:   "Please select check-in date",
		},
		{
			name:          "whitespace check-in",
			edit:          func(r *Request, _ *domain.Hotel) { r.CheckIn = "   " },
			expectedField: "check_in",
			expectedMsg:   "Please select check-in date",
		},
		{
			name:          "whitespace check-out",
			edit:          func(r *Request, _ *domain.Hotel) { r.CheckOut = "\t" },
			expectedField: "check_out",
			expectedMsg:   "Please select check-out date",
		},
		{
			name:          "check-out",
			edit:          func(r *Request, _ *domain.Hotel) { r.CheckOut = "" },
			expectedField: "check_out",
			expectedMsg:   "Please select check-out date",
		},
		{
			name:          "same day stay",
			edit:          func(r *Request, _ *domain.Hotel) { r.CheckOut = r.CheckIn },
			expectedField: "check_out",
			expectedMsg:   "Check-out date must be after check-in date",
		},
		{
			name:          "no guests",
			edit:          func(r *Request, _ *domain.Hotel) { r.Guests = 0 },
			expectedField: "guests",
			expectedMsg:   "Please enter at least one guest",
		},
		{
			name:          "no rooms",
			edit:          func(r *Request, _ *domain.Hotel) { r.Rooms = 0 },
			expectedField: "number_of_rooms",
			expectedMsg:   "Please book at least one room",
		},
		{
			name:          "hotel without room types",
			edit:          func(_ *Request, h *domain.Hotel) { h.RoomTypes = nil },
			expectedField: "room_type",
			expectedMsg:   "No rooms are available for this hotel",
		},
		{
			name:          "unknown room type",
			edit:          func(r *Request, _ *domain.Hotel) { r.RoomType = "Penthouse" },
			expectedField: "room_type",
			expectedMsg:   "Please select a room type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			hotel := testHotel()
			tc.edit(&req, &hotel)

			err := validate(req, hotel)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.expectedField, verr.Field)
			assert.Equal(t, tc.expectedMsg, verr.Message)
		})
	}
}

func TestNewRequest_Defaults(t *testing.T) {
	req := NewRequest(testHotel(), nil, nil)

	assert.Equal(t, 1, req.Guests)
	assert.Equal(t, 1, req.Rooms)
	assert.Equal(t, "Deluxe", req.RoomType)
	assert.Empty(t, req.GuestName)
}

func TestNewRequest_Prefill(t *testing.T) {
	req := NewRequest(testHotel(),
		&Contact{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91 98450 00000"},
		&SearchDates{CheckIn: "2024-06-01", CheckOut: "2024-06-03", Guests: 3},
	)

	assert.Equal(t, "Asha Rao", req.GuestName)
	assert.Equal(t, "+91 98450 00000", req.GuestPhone)
	assert.Equal(t, "2024-06-01", req.CheckIn)
	assert.Equal(t, 3, req.Guests)
	assert.Equal(t, 1, req.Rooms)
}

func TestRequest_Normalized(t *testing.T) {
	req := Request{GuestName: "  Asha Rao ", GuestEmail: " asha@example.com", GuestPhone: "123 "}.Normalized()

	assert.Equal(t, "Asha Rao", req.GuestName)
	assert.Equal(t, "asha@example.com", req.GuestEmail)
	assert.Equal(t, "123", req.GuestPhone)
}
