package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id::text, user_id::text, hotel_id::text, user_name, user_email, user_phone,
	check_in_date::text, check_out_date::text, guests, number_of_rooms, room_type,
	total_amount::float8, payment_status, booking_status, payment_id, created_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Insert(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, hotel_id, user_name, user_email, user_phone,
		check_in_date, check_out_date, guests, number_of_rooms, room_type, total_amount, payment_status, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9, $10, $11, $12, $13, $14)
		RETURNING `+bookingColumns,
		uuid.NewString(), draft.UserID, draft.HotelID, draft.GuestName, draft.GuestEmail, draft.GuestPhone,
		draft.CheckInDate, draft.CheckOutDate, draft.Guests, draft.Rooms, draft.RoomType, draft.TotalAmount,
		string(draft.PaymentStatus), string(draft.BookingStatus))
	return scanBooking(row)
}

func (r *PGBookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) error {
	var paymentStatus, bookingStatus *string
	if patch.PaymentStatus != nil {
		s := string(*patch.PaymentStatus)
		paymentStatus = &s
	}
	if patch.BookingStatus != nil {
		s := string(*patch.BookingStatus)
		bookingStatus = &s
	}

	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET
		payment_status = COALESCE($2, payment_status),
		booking_status = COALESCE($3, booking_status),
		payment_id = COALESCE($4, payment_id)
		WHERE id = $1`, id, paymentStatus, bookingStatus, patch.PaymentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) FindPending(ctx context.Context, userID, hotelID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1 AND hotel_id = $2 AND payment_status = $3
		ORDER BY created_at DESC`, userID, hotelID, string(domain.PaymentStatusPending))
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id::text, b.user_id::text, b.hotel_id::text, b.user_name, b.user_email, b.user_phone,
		b.check_in_date::text, b.check_out_date::text, b.guests, b.number_of_rooms, b.room_type,
		b.total_amount::float8, b.payment_status, b.booking_status, b.payment_id, b.created_at,
		h.name, h.city, h.state, h.images
		FROM bookings b LEFT JOIN hotels h ON h.id = b.hotel_id
		WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b                 domain.Booking
			name, city, state *string
			images            []string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.HotelID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
			&b.CheckInDate, &b.CheckOutDate, &b.Guests, &b.Rooms, &b.RoomType,
			&b.TotalAmount, &b.PaymentStatus, &b.BookingStatus, &b.PaymentID, &b.CreatedAt,
			&name, &city, &state, &images); err != nil {
			return nil, err
		}
		b.Hotel = hotelSummary(name, city, state, images)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListByHotels(ctx context.Context, hotelIDs []string) ([]domain.Booking, error) {
	if len(hotelIDs) == 0 {
		return make([]domain.Booking, 0), nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE hotel_id::text = ANY($1)`, hotelIDs)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// hotelSummary returns nil when the left join found no hotel.
func hotelSummary(name, city, state *string, images []string) *domain.HotelSummary {
	if name == nil {
		return nil
	}
	summary := &domain.HotelSummary{Name: *name, Images: images}
	if city != nil {
		summary.City = *city
	}
	if state != nil {
		summary.State = *state
	}
	if summary.Images == nil {
		summary.Images = []string{}
	}
	return summary
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.HotelID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.CheckInDate, &b.CheckOutDate, &b.Guests, &b.Rooms, &b.RoomType,
		&b.TotalAmount, &b.PaymentStatus, &b.BookingStatus, &b.PaymentID, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
