package booking

import (
	"math"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Pricing is derived from a request and a nightly price; it is never stored on its own.
type Pricing struct {
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
}

// ComputePricing returns zero nights when either date is missing or unparsable, or when
// check-out is not after check-in. Partial days count as a full night.
func ComputePricing(req Request, pricePerNight float64) Pricing {
	nights := Nights(req.CheckIn, req.CheckOut)
	return Pricing{
		Nights:      nights,
		TotalAmount: float64(nights) * pricePerNight * float64(req.Rooms),
	}
}

// Nights is the ceiling of the exact duration between the two instants in days.
func Nights(checkIn, checkOut string) int {
	in, ok := parseDate(checkIn)
	if !ok {
		return 0
	}
	out, ok := parseDate(checkOut)
	if !ok {
		return 0
	}
	if !out.After(in) {
		return 0
	}
	return int(math.Ceil(out.Sub(in).Hours() / 24))
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
