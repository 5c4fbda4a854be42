package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileUseCase interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, name, phone string) (*domain.Profile, error)
}

type ProfileService struct {
	repo     repository.ProfileRepository
	identity booking.IdentityProvider
}

func NewProfileService(repo repository.ProfileRepository, identity booking.IdentityProvider) *ProfileService {
	return &ProfileService{repo: repo, identity: identity}
}

func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, booking.ErrAuthenticationRequired
	}

	profile, err := s.repo.Get(ctx, identity.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

// Update changes the caller's display name and phone. The email belongs to the identity
// provider and is never written here.
func (s *ProfileService) Update(ctx context.Context, name, phone string) (*domain.Profile, error) {
	identity := s.identity.CurrentIdentity(ctx)
	if identity == nil {
		return nil, booking.ErrAuthenticationRequired
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	profile, err := s.repo.Update(ctx, identity.UserID, name, strings.TrimSpace(phone))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

var _ ProfileUseCase = (*ProfileService)(nil)
