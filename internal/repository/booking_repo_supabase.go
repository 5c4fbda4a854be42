package repository

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

type SupabaseBookingRepository struct {
	client *supa.Client
}

func NewSupabaseBookingRepository(client *supa.Client) BookingRepository {
	return &SupabaseBookingRepository{client: client}
}

func (r *SupabaseBookingRepository) Insert(_ context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	var rows []domain.Booking
	if _, err := r.client.From(bookingsTable).
		Insert(draft, false, "", "representation", "").
		ExecuteTo(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNoRowsReturned
	}
	return &rows[0], nil
}

func (r *SupabaseBookingRepository) Update(_ context.Context, id string, patch domain.BookingPatch) error {
	_, _, err := r.client.From(bookingsTable).
		Update(patch, "minimal", "").
		Eq("id", id).
		Execute()
	return err
}

func (r *SupabaseBookingRepository) FindPending(_ context.Context, userID, hotelID string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	_, err := r.client.From(bookingsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("hotel_id", hotelID).
		Eq("payment_status", string(domain.PaymentStatusPending)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *SupabaseBookingRepository) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	_, err := r.client.From(bookingsTable).
		Select("*, hotels(name, city, state, images)", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *SupabaseBookingRepository) ListByHotels(_ context.Context, hotelIDs []string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	if len(hotelIDs) == 0 {
		return bookings, nil
	}
	_, err := r.client.From(bookingsTable).
		Select("*", "", false).
		In("hotel_id", hotelIDs).
		ExecuteTo(&bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *SupabaseBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	var rows []domain.Booking
	if _, err := r.client.From(bookingsTable).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

var _ BookingRepository = (*SupabaseBookingRepository)(nil)
