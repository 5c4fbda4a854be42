package domain

import "time"

const (
	RoleCustomer   = "customer"
	RoleHotelOwner = "hotel_owner"
)

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i *Identity) IsHotelOwner() bool {
	return i != nil && i.Role == RoleHotelOwner
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
