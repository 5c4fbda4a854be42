package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOwnerUseCase is a mock implementation of hotels.OwnerUseCase
type MockOwnerUseCase struct {
	mock.Mock
}

func (m *MockOwnerUseCase) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockOwnerUseCase) Stats(ctx context.Context) (*hotels.OwnerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotels.OwnerStats), args.Error(1)
}

func (m *MockOwnerUseCase) DeleteHotel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestOwnerHandler_listHotels(t *testing.T) {
	mockService := &MockOwnerUseCase{}
	handler := NewOwnerHandler(mockService)
	c, w := newTestContext(http.MethodGet, "/api/v1/owner/hotels", nil)

	mockService.On("ListHotels", c.Request.Context()).Return([]domain.Hotel{
		{ID: "h-3", Name: "Palace Heritage", HotelOwnerID: "o-1"},
		{ID: "h-1", Name: "Lakeview Residency", HotelOwnerID: "o-1"},
	}, nil)

	handler.listHotels(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []domain.Hotel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "h-3", response[0].ID)
	assert.Equal(t, "o-1", response[0].HotelOwnerID)
}

func TestOwnerHandler_stats_StoreError(t *testing.T) {
	mockService := &MockOwnerUseCase{}
	handler := NewOwnerHandler(mockService)
	c, w := newTestContext(http.MethodGet, "/api/v1/owner/stats", nil)

	mockService.On("Stats", c.Request.Context()).Return(nil, &hotels.StoreError{Op: "list hotel bookings", Err: errors.New("timeout")})

	handler.stats(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "timeout", decodeBody(t, w)["error"])
}

func TestOwnerHandler_deleteHotel(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not owned", hotels.ErrHotelNotFound, http.StatusNotFound},
		{"not an owner", hotels.ErrNotOwner, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockOwnerUseCase{}
			handler := NewOwnerHandler(mockService)
			c, w := newTestContext(http.MethodDelete, "/api/v1/owner/hotels/h-1", nil)
			c.Params = gin.Params{{Key: "id", Value: "h-1"}}

			mockService.On("DeleteHotel", c.Request.Context(), "h-1").Return(tc.err)

			handler.deleteHotel(c)
			// the status is only flushed once the body is written
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tc.expected, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
