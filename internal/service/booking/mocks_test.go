package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/payment"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Insert(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	args := m.Called(ctx, draft)
	if fn, ok := args.Get(0).(func(context.Context, domain.BookingDraft) *domain.Booking); ok {
		return fn(ctx, draft), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockBookingRepository) FindPending(ctx context.Context, userID, hotelID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, hotelID)
	if fn, ok := args.Get(0).(func(context.Context, string, string) []domain.Booking); ok {
		return fn(ctx, userID, hotelID), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByHotels(ctx context.Context, hotelIDs []string) ([]domain.Booking, error) {
	args := m.Called(ctx, hotelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, userID, name, phone string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateOrder(ctx context.Context, req payment.OrderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProvider) CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Capture), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) AcquireSubmitLock(ctx context.Context, userID, hotelID string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, userID, hotelID, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLocker) ReleaseSubmitLock(ctx context.Context, userID, hotelID, token string) error {
	args := m.Called(ctx, userID, hotelID, token)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

// staticIdentity always reports the same caller; nil means anonymous.
type staticIdentity struct {
	identity *domain.Identity
}

func (s staticIdentity) CurrentIdentity(context.Context) *domain.Identity {
	return s.identity
}

func signedIn() staticIdentity {
	return staticIdentity{identity: &domain.Identity{UserID: "u-1", Email: "asha@example.com"}}
}

func testHotel() domain.Hotel {
	return domain.Hotel{
		ID:            "h-1",
		Name:          "Lakeview Residency",
		City:          "Udaipur",
		PricePerNight: 5000,
		RoomTypes:     []string{"Deluxe", "Suite"},
	}
}

func validRequest() Request {
	return Request{
		GuestName:  "Asha Rao",
		GuestEmail: "asha@example.com",
		GuestPhone: "+91 98450 00000",
		CheckIn:    "2024-06-01",
		CheckOut:   "2024-06-03",
		Guests:     2,
		Rooms:      2,
		RoomType:   "Deluxe",
	}
}
