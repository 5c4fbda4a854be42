package domain

import "time"

type Hotel struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Address        string    `json:"address"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	StarRating     int       `json:"star_rating"`
	PricePerNight  float64   `json:"price_per_night"`
	Images         []string  `json:"images"`
	Amenities      []string  `json:"amenities"`
	RoomTypes      []string  `json:"room_types"`
	TotalRooms     int       `json:"total_rooms"`
	AvailableRooms int       `json:"available_rooms"`
	HotelOwnerID   string    `json:"hotel_owner_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasRoomType reports whether roomType is one of the hotel's declared room types.
func (h Hotel) HasRoomType(roomType string) bool {
	for _, rt := range h.RoomTypes {
		if rt == roomType {
			return true
		}
	}
	return false
}
