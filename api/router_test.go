package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/auth"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(checks map[string]HealthCheck, bookings *MockBookingUseCase) *gin.Engine {
	return newTestRouterWithOwner(checks, bookings, &MockOwnerUseCase{})
}

func newTestRouterWithOwner(checks map[string]HealthCheck, bookings *MockBookingUseCase, owner *MockOwnerUseCase) *gin.Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewRouter(
		config.HTTPConfig{Mode: gin.TestMode, AllowedOrigins: []string{"http://localhost:3000"}},
		log,
		auth.NewVerifier("test-secret"),
		checks,
		Handlers{
			Hotels:   NewHotelHandler(&MockHotelUseCase{}),
			Bookings: NewBookingHandler(bookings),
			Profile:  NewProfileHandler(&MockProfileUseCase{}),
			Owner:    NewOwnerHandler(owner),
		},
	)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(map[string]HealthCheck{
		"redis": func(context.Context) error { return nil },
	}, &MockBookingUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Health_Degraded(t *testing.T) {
	router := newTestRouter(map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}, &MockBookingUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(nil, &MockBookingUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	bookings := &MockBookingUseCase{}
	router := newTestRouter(nil, bookings)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	bookings.AssertNotCalled(t, "ListMyBookings", mock.Anything)
}

func TestRouter_AnonymousReachesService(t *testing.T) {
	bookings := &MockBookingUseCase{}
	router := newTestRouter(nil, bookings)
	bookings.On("ListMyBookings", mock.Anything).Return(nil, booking.ErrAuthenticationRequired)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	bookings.AssertExpectations(t)
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := auth.Claims{
		Email: "owner@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "o-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func TestRouter_OwnerRoutes_RequireHotelOwnerRole(t *testing.T) {
	testCases := []struct {
		name          string
		authorization string
		expected      int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"customer", bearer(t, domain.RoleCustomer), http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner := &MockOwnerUseCase{}
			router := newTestRouterWithOwner(nil, &MockBookingUseCase{}, owner)

			for _, target := range []string{"/api/v1/owner/hotels", "/api/v1/owner/stats"} {
				req := httptest.NewRequest(http.MethodGet, target, nil)
				if tc.authorization != "" {
					req.Header.Set("Authorization", tc.authorization)
				}
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				assert.Equal(t, tc.expected, w.Code, target)
			}
			assert.Empty(t, owner.Calls)
		})
	}
}

func TestRouter_OwnerRoutes_HotelOwner(t *testing.T) {
	owner := &MockOwnerUseCase{}
	router := newTestRouterWithOwner(nil, &MockBookingUseCase{}, owner)
	owner.On("Stats", mock.Anything).Return(&hotels.OwnerStats{TotalHotels: 2, TotalBookings: 4, TotalRevenue: 32000, OccupancyRate: 60}, nil).Once()
	owner.On("DeleteHotel", mock.Anything, "h-1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/stats", nil)
	req.Header.Set("Authorization", bearer(t, domain.RoleHotelOwner))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_hotels":2,"total_bookings":4,"total_revenue":32000,"occupancy_rate":60}`, w.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/owner/hotels/h-1", nil)
	req.Header.Set("Authorization", bearer(t, domain.RoleHotelOwner))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	owner.AssertExpectations(t)
}
