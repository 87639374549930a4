package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/event"
	"lunchly/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]*Customer, error)
	TopCustomers(ctx context.Context) ([]*Customer, error)
	CreateCustomer(ctx context.Context, firstName, lastName string, phone, notes *string) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName string, phone, notes *string) (*Customer, error)
	GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo         CustomerRepository
	reservations ReservationLister
	pub          event.EventPublisher
	logger       *slog.Logger
}

func NewCustomerService(repo CustomerRepository, reservations ReservationLister, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if reservations == nil {
		panic("reservation lister cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NoopPublisher{}
	}

	return &customerService{
		repo:         repo,
		reservations: reservations,
		pub:          eventPublisher,
		logger:       logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Phone:      cust.Phone,
		Notes:      cust.Notes,
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to get customer by ID")

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, err
		}

		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

// SearchCustomers treats a one-word query as a name that may be either the
// first or the last name, and a longer query as "first last".
func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]*Customer, error) {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return s.ListCustomers(ctx)
	}

	firstName := parts[0]
	var lastName *string
	if len(parts) > 1 {
		rest := strings.Join(parts[1:], " ")
		lastName = &rest
	}

	logCtx := s.logger.With(slog.String("firstName", firstName), slog.Bool("hasLastName", lastName != nil))
	logCtx.InfoContext(ctx, "Attempting to search customers by name")

	customers, err := s.repo.FindByName(ctx, firstName, lastName)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error searching customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully searched customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) TopCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to rank customers by reservation count")

	customers, err := s.repo.MostReservations(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error ranking customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to rank customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully ranked customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, firstName, lastName string, phone, notes *string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	customer := NewCustomer(strings.TrimSpace(firstName), strings.TrimSpace(lastName), phone, notes)

	if err := s.repo.Save(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}
	logCtx := s.logger.With(slog.Int64("customerID", customer.ID))

	created := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully created new customer")
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName string, phone, notes *string) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	customer.FirstName = strings.TrimSpace(firstName)
	customer.LastName = strings.TrimSpace(lastName)
	customer.Phone = phone
	customer.Notes = notes

	if err := s.repo.Save(ctx, customer); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save customer %d: %w", customerID, err)
	}

	updated := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updated); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return Reservations(ctx, s.reservations, customer)
}

// Reservations returns the reservations booked by c.
func Reservations(ctx context.Context, lister ReservationLister, c *Customer) ([]*reservation.Reservation, error) {
	reservations, err := lister.FindByCustomerID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations for customer %d: %w", c.ID, err)
	}
	return reservations, nil
}
