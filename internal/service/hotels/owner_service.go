package hotels

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/sirupsen/logrus"
)

// OwnerStats summarises an owner's portfolio. OccupancyRate is a percentage of
// rooms currently taken across all of the owner's hotels.
type OwnerStats struct {
	TotalHotels   int     `json:"total_hotels"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type OwnerUseCase interface {
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	Stats(ctx context.Context) (*OwnerStats, error)
	DeleteHotel(ctx context.Context, id string) error
}

type OwnerService struct {
	hotels   repository.HotelRepository
	bookings repository.BookingRepository
	cache    HotelCache
	identity booking.IdentityProvider
	log      *logrus.Logger
}

func NewOwnerService(
	hotels repository.HotelRepository,
	bookings repository.BookingRepository,
	cache HotelCache,
	identity booking.IdentityProvider,
	log *logrus.Logger,
) *OwnerService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OwnerService{hotels: hotels, bookings: bookings, cache: cache, identity: identity, log: log}
}

// ListHotels returns the caller's hotels, newest first.
func (s *OwnerService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	hotels, err := s.hotels.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, storeError("list owner hotels", err)
	}
	return hotels, nil
}

func (s *OwnerService) Stats(ctx context.Context) (*OwnerStats, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	hotels, err := s.hotels.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, storeError("list owner hotels", err)
	}

	ids := make([]string, 0, len(hotels))
	for _, h := range hotels {
		ids = append(ids, h.ID)
	}
	bookings, err := s.bookings.ListByHotels(ctx, ids)
	if err != nil {
		return nil, storeError("list hotel bookings", err)
	}

	stats := ComputeOwnerStats(hotels, bookings)
	return &stats, nil
}

// DeleteHotel removes one of the caller's hotels. Hotels owned by someone else
// are reported as not found.
func (s *OwnerService) DeleteHotel(ctx context.Context, id string) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	err = s.hotels.Delete(ctx, id, owner.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHotelNotFound
	}
	if err != nil {
		return storeError("delete hotel", err)
	}

	s.log.WithFields(logrus.Fields{"hotel_id": id, "owner_id": owner.UserID}).Info("hotel deleted")
	if s.cache != nil {
		if err := s.cache.InvalidateHotels(ctx); err != nil {
			s.log.WithError(err).Warn("hotels cache invalidation failed")
		}
	}
	return nil
}

func (s *OwnerService) owner(ctx context.Context) (*domain.Identity, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, booking.ErrAuthenticationRequired
	}
	if !identity.IsHotelOwner() {
		return nil, ErrNotOwner
	}
	return identity, nil
}

// ComputeOwnerStats counts every booking but only confirmed ones towards revenue.
func ComputeOwnerStats(hotels []domain.Hotel, bookings []domain.Booking) OwnerStats {
	stats := OwnerStats{TotalHotels: len(hotels), TotalBookings: len(bookings)}
	for _, b := range bookings {
		if b.BookingStatus == domain.BookingStatusConfirmed {
			stats.TotalRevenue += b.TotalAmount
		}
	}

	var taken, total int
	for _, h := range hotels {
		taken += h.TotalRooms - h.AvailableRooms
		total += h.TotalRooms
	}
	if total > 0 {
		stats.OccupancyRate = float64(taken) / float64(total) * 100
	}
	return stats
}

var _ OwnerUseCase = (*OwnerService)(nil)
