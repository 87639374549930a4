package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"lunchly/internal/event"
	"lunchly/internal/pkg/apperrors"
)

type Service interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)
	AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*Reservation, error)
}

var _ Service = (*reservationService)(nil)

type reservationService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, publisher event.EventPublisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("reservation repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &reservationService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "reservationService")),
	}
}

func (s *reservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Listing reservations for customer")

	reservations, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing reservations", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list reservations for customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully listed reservations", slog.Int("count", len(reservations)))
	return reservations, nil
}

func (s *reservationService) AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*Reservation, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to add reservation")

	if numGuests < 1 {
		logCtx.WarnContext(ctx, "Validation failed: party too small", slog.Int("numGuests", numGuests))
		return nil, apperrors.NewValidationError("numGuests", "cannot make a reservation for fewer than 1 guest")
	}
	if startAt.IsZero() {
		logCtx.WarnContext(ctx, "Validation failed: start time missing")
		return nil, apperrors.NewValidationError("startAt", "start time is required")
	}

	res := NewReservation(customerID, startAt, numGuests, strings.TrimSpace(notes))
	if err := s.repo.Save(ctx, res); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save reservation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save reservation for customer %d: %w", customerID, err)
	}
	logCtx = logCtx.With(slog.Int64("reservationID", res.ID))

	created := event.ReservationCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.ReservationEventPayload{
			ReservationID: res.ID,
			CustomerID:    res.CustomerID,
			StartAt:       res.StartAt,
			NumGuests:     res.NumGuests,
			Notes:         res.Notes,
		},
	}
	if pubErr := s.pub.PublishReservationCreated(ctx, created); pubErr != nil {
		logCtx.ErrorContext(ctx, "Reservation saved, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully added reservation")
	return res, nil
}
