package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const hotelColumns = `id::text, name, COALESCE(description, ''), city, COALESCE(state, ''), COALESCE(address, ''),
	COALESCE(latitude, 0)::float8, COALESCE(longitude, 0)::float8, star_rating, price_per_night::float8,
	COALESCE(images, '{}'), COALESCE(amenities, '{}'), COALESCE(room_types, '{}'), total_rooms, available_rooms,
	COALESCE(hotel_owner_id::text, ''), created_at, updated_at`

type PGHotelRepository struct {
	db *pgxpool.Pool
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &PGHotelRepository{db: db}
}

func (r *PGHotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectHotels(rows)
}

func (r *PGHotelRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE hotel_owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectHotels(rows)
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	return scanHotel(r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id))
}

func (r *PGHotelRepository) Delete(ctx context.Context, id, ownerID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM hotels WHERE id = $1 AND hotel_owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectHotels(rows pgx.Rows) ([]domain.Hotel, error) {
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

func scanHotel(row pgx.Row) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.City, &h.State, &h.Address, &h.Latitude, &h.Longitude,
		&h.StarRating, &h.PricePerNight, &h.Images, &h.Amenities, &h.RoomTypes, &h.TotalRooms, &h.AvailableRooms,
		&h.HotelOwnerID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

var _ HotelRepository = (*PGHotelRepository)(nil)
