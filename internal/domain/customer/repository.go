package customer

import (
	"context"

	"lunchly/internal/domain/reservation"
)

// MostReservationsLimit caps the ranking returned by MostReservations.
const MostReservationsLimit = 10

type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// FindByName matches firstName against either name column when lastName
	// is nil, and both columns exactly otherwise.
	FindByName(ctx context.Context, firstName string, lastName *string) ([]*Customer, error)

	MostReservations(ctx context.Context) ([]*Customer, error)

	Save(ctx context.Context, customer *Customer) error
}

// ReservationLister is the slice of the reservation store the customer
// service needs.
type ReservationLister interface {
	FindByCustomerID(ctx context.Context, customerID int64) ([]*reservation.Reservation, error)
}
