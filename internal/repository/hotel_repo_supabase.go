package repository

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

type SupabaseHotelRepository struct {
	client *supa.Client
}

func NewSupabaseHotelRepository(client *supa.Client) HotelRepository {
	return &SupabaseHotelRepository{client: client}
}

func (r *SupabaseHotelRepository) List(_ context.Context) ([]domain.Hotel, error) {
	hotels := make([]domain.Hotel, 0)
	_, err := r.client.From(hotelsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&hotels)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *SupabaseHotelRepository) GetByID(_ context.Context, id string) (*domain.Hotel, error) {
	var rows []domain.Hotel
	if _, err := r.client.From(hotelsTable).
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

func (r *SupabaseHotelRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Hotel, error) {
	hotels := make([]domain.Hotel, 0)
	_, err := r.client.From(hotelsTable).
		Select("*", "", false).
		Eq("hotel_owner_id", ownerID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&hotels)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

// Delete asks for the deleted rows back so a foreign or missing hotel reads as ErrNotFound.
func (r *SupabaseHotelRepository) Delete(_ context.Context, id, ownerID string) error {
	var rows []domain.Hotel
	if _, err := r.client.From(hotelsTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("hotel_owner_id", ownerID).
		ExecuteTo(&rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

var _ HotelRepository = (*SupabaseHotelRepository)(nil)
