package reservation

import (
	"context"

	"lunchly/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Reservation, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Reservation)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) Save(ctx context.Context, reservation *Reservation) error {
	return _m.Called(ctx, reservation).Error(0)
}

var _ Repository = (*MockRepository)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishReservationCreated(ctx context.Context, evt event.ReservationCreatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)
