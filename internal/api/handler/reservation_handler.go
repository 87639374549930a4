package handler

import (
	"log/slog"
	"net/http"

	"lunchly/internal/api/handler/dto"
	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
)

type ReservationHandler struct {
	customers    customer.CustomerService
	reservations reservation.Service
	logger       *slog.Logger
}

func NewReservationHandler(customers customer.CustomerService, reservations reservation.Service, l *slog.Logger) *ReservationHandler {
	if customers == nil || reservations == nil {
		panic("ReservationHandler services cannot be nil")
	}
	return &ReservationHandler{
		customers:    customers,
		reservations: reservations,
		logger:       l.With("component", "ReservationHandler"),
	}
}

// ListReservations handles GET /customers/{customerID}/reservations
// @Summary List a customer's reservations
// @Description Returns the reservations booked by the customer ordered by start time.
// @Tags Reservations
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {array} dto.ReservationResponse "Reservations"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	reservations, err := h.customers.GetCustomerReservations(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list reservations", slog.Int64("customerID", customerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationListResponse(reservations))
}

// AddReservation handles POST /customers/{customerID}/reservations
// @Summary Book a reservation for a customer
// @Tags Reservations
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} dto.ReservationResponse "Reservation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) AddReservation(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	logCtx := h.logger.With(slog.Int64("customerID", customerID))

	var req dto.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		logCtx.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.customers.GetCustomer(r.Context(), customerID); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.reservations.AddReservation(r.Context(), customerID, req.StartAt, req.NumGuests, req.Notes)
	if err != nil {
		logCtx.ErrorContext(r.Context(), "Service failed to add reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logCtx.InfoContext(r.Context(), "Reservation created", slog.Int64("reservationID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewReservationResponse(created))
}
