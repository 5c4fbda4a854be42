package hotels

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type HotelUseCase interface {
	List(ctx context.Context, filter Filter) (*Page, error)
	GetByID(ctx context.Context, id string) (*domain.Hotel, error)
}

type HotelCache interface {
	GetHotels(ctx context.Context) ([]domain.Hotel, error)
	SetHotels(ctx context.Context, hotels []domain.Hotel) error
	InvalidateHotels(ctx context.Context) error
}

type HotelService struct {
	repo     repository.HotelRepository
	cache    HotelCache
	pageSize int
	log      *logrus.Logger
}

func NewHotelService(repo repository.HotelRepository, cache HotelCache, pageSize int, log *logrus.Logger) *HotelService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HotelService{repo: repo, cache: cache, pageSize: pageSize, log: log}
}

func (s *HotelService) List(ctx context.Context, filter Filter) (*Page, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}
	page := Apply(all, filter)
	return &page, nil
}

func (s *HotelService) all(ctx context.Context) ([]domain.Hotel, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHotels(ctx)
		switch {
		case err != nil:
			// an unreadable entry would be served until it expires
			s.log.WithError(err).Warn("hotels cache read failed")
			_ = s.cache.InvalidateHotels(ctx)
		case cached != nil:
			return cached, nil
		}
	}

	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list hotels", err)
	}
	if s.cache != nil {
		if err := s.cache.SetHotels(ctx, hotels); err != nil {
			s.log.WithError(err).Warn("hotels cache write failed")
		}
	}
	return hotels, nil
}

func (s *HotelService) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	hotel, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, storeError("get hotel", err)
	}
	return hotel, nil
}

var _ HotelUseCase = (*HotelService)(nil)
