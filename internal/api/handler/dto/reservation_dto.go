package dto

import (
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"
)

type CreateReservationRequest struct {
	StartAt   time.Time `json:"startAt"`
	NumGuests int       `json:"numGuests"`
	Notes     string    `json:"notes,omitempty"`
}

func (r *CreateReservationRequest) Validate() error {
	if r.StartAt.IsZero() {
		return apperrors.NewValidationError("startAt", "start time is required")
	}
	if r.NumGuests < 1 {
		return apperrors.NewValidationError("numGuests", "cannot make a reservation for fewer than 1 guest")
	}
	return nil
}

type ReservationResponse struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	StartAt       time.Time `json:"startAt"`
	NumGuests     int       `json:"numGuests"`
	Notes         string    `json:"notes,omitempty"`
}

func NewReservationResponse(res *reservation.Reservation) ReservationResponse {
	if res == nil {
		return ReservationResponse{}
	}
	return ReservationResponse{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		StartAt:       res.StartAt,
		NumGuests:     res.NumGuests,
		Notes:         res.Notes,
	}
}

func NewReservationListResponse(reservations []*reservation.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		resp = append(resp, NewReservationResponse(res))
	}
	return resp
}
