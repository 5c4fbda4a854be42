package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePricing_TwoNightsTwoRooms(t *testing.T) {
	p := ComputePricing(validRequest(), 5000)

	assert.Equal(t, 2, p.Nights)
	assert.Equal(t, 20000.0, p.TotalAmount)
}

func TestNights(t *testing.T) {
	testCases := []struct {
		name     string
		checkIn  string
		checkOut string
		expected int
	}{
		{"two days", "2024-06-01", "2024-06-03", 2},
		{"same day", "2024-06-01", "2024-06-01", 0},
		{"reversed", "2024-06-03", "2024-06-01", 0},
		{"partial day rounds up", "2024-06-01T12:00:00Z", "2024-06-02T11:00:00Z", 1},
		{"partial day beyond one", "2024-06-01T10:00", "2024-06-02T12:00", 2},
		{"missing check-in", "", "2024-06-03", 0},
		{"missing check-out", "2024-06-01", "", 0},
		{"unparsable", "next friday", "2024-06-03", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Nights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestComputePricing_ZeroNightsZeroTotal(t *testing.T) {
	req := validRequest()
	req.CheckOut = req.CheckIn

	p := ComputePricing(req, 5000)

	assert.Equal(t, 0, p.Nights)
	assert.Zero(t, p.TotalAmount)
}
