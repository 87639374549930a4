package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunchly/internal/api/handler"
	"lunchly/internal/api/handler/dto"
	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReservationHandler() (*handler.ReservationHandler, *MockCustomerService, *MockReservationService) {
	customers := new(MockCustomerService)
	reservations := new(MockReservationService)
	return handler.NewReservationHandler(customers, reservations, testLogger), customers, reservations
}

func TestListReservations(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, customers, _ := setupReservationHandler()
		startAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		customers.On("GetCustomerReservations", mock.Anything, int64(3)).Return([]*reservation.Reservation{
			{ID: 10, CustomerID: 3, StartAt: startAt, NumGuests: 2},
		}, nil)

		rec := httptest.NewRecorder()
		h.ListReservations(rec, withCustomerID(httptest.NewRequest(http.MethodGet, "/customers/3/reservations", nil), "3"))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.ReservationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(10), resp[0].ReservationID)
		assert.True(t, startAt.Equal(resp[0].StartAt))
	})

	t.Run("unknown customer", func(t *testing.T) {
		h, customers, _ := setupReservationHandler()
		customers.On("GetCustomerReservations", mock.Anything, int64(4)).
			Return(nil, apperrors.NewNotFoundError("customer", 4))

		rec := httptest.NewRecorder()
		h.ListReservations(rec, withCustomerID(httptest.NewRequest(http.MethodGet, "/customers/4/reservations", nil), "4"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAddReservation(t *testing.T) {
	startAt := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	body, _ := json.Marshal(dto.CreateReservationRequest{StartAt: startAt, NumGuests: 4, Notes: "anniversary"})

	t.Run("success", func(t *testing.T) {
		h, customers, reservations := setupReservationHandler()
		customers.On("GetCustomer", mock.Anything, int64(3)).
			Return(&customer.Customer{ID: 3, FirstName: "Ada", LastName: "Lovelace"}, nil)
		reservations.On("AddReservation", mock.Anything, int64(3), mock.AnythingOfType("time.Time"), 4, "anniversary").
			Return(&reservation.Reservation{ID: 12, CustomerID: 3, StartAt: startAt, NumGuests: 4, Notes: "anniversary"}, nil)

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPost, "/customers/3/reservations", bytes.NewReader(body)), "3")
		h.AddReservation(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.ReservationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(12), resp.ReservationID)
		reservations.AssertExpectations(t)
	})

	t.Run("customer missing", func(t *testing.T) {
		h, customers, reservations := setupReservationHandler()
		customers.On("GetCustomer", mock.Anything, int64(8)).
			Return(nil, apperrors.NewNotFoundError("customer", 8))

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPost, "/customers/8/reservations", bytes.NewReader(body)), "8")
		h.AddReservation(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		reservations.AssertNotCalled(t, "AddReservation")
	})

	t.Run("party too small", func(t *testing.T) {
		h, customers, reservations := setupReservationHandler()
		bad, _ := json.Marshal(dto.CreateReservationRequest{StartAt: startAt, NumGuests: 0})

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPost, "/customers/3/reservations", bytes.NewReader(bad)), "3")
		h.AddReservation(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "numGuests", resp.Error.Field)
		customers.AssertNotCalled(t, "GetCustomer")
		reservations.AssertNotCalled(t, "AddReservation")
	})
}
