package handler_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"

	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if customers, ok := args.Get(0).([]*customer.Customer); ok {
		return customers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) SearchCustomers(ctx context.Context, query string) ([]*customer.Customer, error) {
	args := m.Called(ctx, query)
	if customers, ok := args.Get(0).([]*customer.Customer); ok {
		return customers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) TopCustomers(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if customers, ok := args.Get(0).([]*customer.Customer); ok {
		return customers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, firstName, lastName string, phone, notes *string) (*customer.Customer, error) {
	args := m.Called(ctx, firstName, lastName, phone, notes)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName string, phone, notes *string) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, firstName, lastName, phone, notes)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, customerID)
	if reservations, ok := args.Get(0).([]*reservation.Reservation); ok {
		return reservations, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, customerID)
	if reservations, ok := args.Get(0).([]*reservation.Reservation); ok {
		return reservations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationService) AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*reservation.Reservation, error) {
	args := m.Called(ctx, customerID, startAt, numGuests, notes)
	if res, ok := args.Get(0).(*reservation.Reservation); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
