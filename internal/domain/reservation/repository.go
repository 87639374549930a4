package reservation

import "context"

type Repository interface {
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Reservation, error)

	Save(ctx context.Context, reservation *Reservation) error
}
