package dto

import (
	"encoding/json"
	"testing"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequest = "Valid request"

func TestCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request CustomerRequest
		field   string
	}{
		{validRequest, CustomerRequest{FirstName: "Ada", LastName: "Lovelace"}, ""},
		{"Empty first name", CustomerRequest{FirstName: "", LastName: "Lovelace"}, "firstName"},
		{"Blank last name", CustomerRequest{FirstName: "Ada", LastName: "   "}, "lastName"},
		{"Both empty", CustomerRequest{}, "firstName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateReservationRequestValidate(t *testing.T) {
	startAt := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		request CreateReservationRequest
		wantErr bool
	}{
		{validRequest, CreateReservationRequest{StartAt: startAt, NumGuests: 2}, false},
		{"Missing start", CreateReservationRequest{NumGuests: 2}, true},
		{"No guests", CreateReservationRequest{StartAt: startAt}, true},
		{"Negative guests", CreateReservationRequest{StartAt: startAt, NumGuests: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCustomerResponse(t *testing.T) {
	phone := "555-0100"
	resp := NewCustomerResponse(&customer.Customer{ID: 3, FirstName: "Ada", LastName: "Lovelace", Phone: &phone})

	assert.Equal(t, int64(3), resp.CustomerID)
	assert.Equal(t, "Ada Lovelace", resp.FullName)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customerId":3,"firstName":"Ada","lastName":"Lovelace","fullName":"Ada Lovelace","phone":"555-0100"}`, string(body))

	assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))
}

func TestNewCustomerListResponseIsNeverNil(t *testing.T) {
	resp := NewCustomerListResponse(nil)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestNewReservationResponse(t *testing.T) {
	startAt := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	resp := NewReservationResponse(&reservation.Reservation{ID: 8, CustomerID: 3, StartAt: startAt, NumGuests: 4})

	assert.Equal(t, int64(8), resp.ReservationID)
	assert.Equal(t, int64(3), resp.CustomerID)
	assert.Equal(t, 4, resp.NumGuests)
	assert.Len(t, NewReservationListResponse([]*reservation.Reservation{{ID: 1}, {ID: 2}}), 2)
}
