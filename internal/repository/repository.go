package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

var (
	ErrNotFound       = errors.New("record not found")
	errNoRowsReturned = errors.New("store returned no rows")
)

type BookingRepository interface {
	Insert(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	Update(ctx context.Context, id string, patch domain.BookingPatch) error
	// FindPending returns the payment-pending bookings of a user for a hotel, most recent first.
	FindPending(ctx context.Context, userID, hotelID string) ([]domain.Booking, error)
	// ListByUser returns a user's bookings with a summary of each hotel, most recent first.
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByHotels(ctx context.Context, hotelIDs []string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type HotelRepository interface {
	// List returns all hotels, newest first.
	List(ctx context.Context) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id string) (*domain.Hotel, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error)
	// Delete removes a hotel only when it belongs to ownerID.
	Delete(ctx context.Context, id, ownerID string) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID, name, phone string) (*domain.Profile, error)
}
