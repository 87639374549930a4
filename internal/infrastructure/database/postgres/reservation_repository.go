package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/infrastructure/monitoring"
	"lunchly/internal/pkg/apperrors"
)

const (
	findReservationsByCustomerSQL = `
        SELECT id, customer_id, start_at, num_guests, notes
        FROM reservations
        WHERE customer_id = $1
        ORDER BY start_at`

	insertReservationSQL = `
        INSERT INTO reservations (customer_id, start_at, num_guests, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	updateReservationSQL = `
        UPDATE reservations
        SET customer_id = $1,
            start_at = $2,
            num_guests = $3,
            notes = $4
        WHERE id = $5`
)

type ReservationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ reservation.Repository = (*ReservationRepository)(nil)

func NewReservationRepository(db DBPool, logger *slog.Logger) *ReservationRepository {
	if db == nil {
		panic("DBPool cannot be nil for ReservationRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewReservationRepository, using default stderr handler")
	}
	return &ReservationRepository{
		db:     db,
		logger: logger.With("component", "ReservationRepository"),
	}
}

func (r *ReservationRepository) FindByCustomerID(ctx context.Context, customerID int64) (reservations []*reservation.Reservation, err error) {
	defer monitoring.ObserveQuery("reservations_find_by_customer", time.Now(), &err)

	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Attempting to find reservations for customer")

	rows, err := r.db.Query(ctx, findReservationsByCustomerSQL, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query reservations", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query reservations: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	reservations = make([]*reservation.Reservation, 0)
	for rows.Next() {
		var res reservation.Reservation
		if err = rows.Scan(
			&res.ID,
			&res.CustomerID,
			&res.StartAt,
			&res.NumGuests,
			&res.Notes,
		); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan reservation row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan reservation row: %w", apperrors.ErrDatabase, err)
		}
		reservations = append(reservations, &res)
	}

	if err = rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating reservation rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating reservation rows: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Finished finding reservations", slog.Int("count", len(reservations)))
	return reservations, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if res == nil {
		return fmt.Errorf("%w: reservation cannot be nil", apperrors.ErrInvalidArgument)
	}

	if res.ID == 0 {
		return r.createReservation(ctx, res)
	}
	return r.updateReservation(ctx, res)
}

func (r *ReservationRepository) createReservation(ctx context.Context, res *reservation.Reservation) (err error) {
	defer monitoring.ObserveQuery("reservations_insert", time.Now(), &err)

	logCtx := r.logger.With(slog.Int64("customerID", res.CustomerID))
	logCtx.InfoContext(ctx, "Attempting to insert new reservation")

	err = r.db.QueryRow(ctx, insertReservationSQL,
		res.CustomerID,
		res.StartAt,
		res.NumGuests,
		res.Notes,
	).Scan(&res.ID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to insert reservation", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}

	logCtx.InfoContext(ctx, "Reservation inserted successfully", slog.Int64("reservationID", res.ID))
	return nil
}

func (r *ReservationRepository) updateReservation(ctx context.Context, res *reservation.Reservation) (err error) {
	defer monitoring.ObserveQuery("reservations_update", time.Now(), &err)

	logCtx := r.logger.With(slog.Int64("reservationID", res.ID))
	logCtx.InfoContext(ctx, "Attempting to update reservation")

	cmdTag, err := r.db.Exec(ctx, updateReservationSQL,
		res.CustomerID,
		res.StartAt,
		res.NumGuests,
		res.Notes,
		res.ID,
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to update reservation", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Update affected zero rows, reservation likely not found")
	}
	return nil
}
