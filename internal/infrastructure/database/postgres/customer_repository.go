package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/infrastructure/monitoring"
	"lunchly/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	findAllCustomersSQL = `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        ORDER BY last_name, first_name`

	findCustomerByIDSQL = `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE id = $1`

	findCustomersByEitherNameSQL = `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE first_name = $1
           OR last_name = $1`

	findCustomersByFullNameSQL = `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE first_name = $1
          AND last_name = $2`

	mostReservationsSQL = `
        SELECT c.id, c.first_name, c.last_name, c.phone, c.notes, COUNT(r.id) AS num_reservations
        FROM customers AS c
        JOIN reservations AS r ON r.customer_id = c.id
        GROUP BY c.id
        ORDER BY num_reservations DESC
        LIMIT $1`

	insertCustomerSQL = `
        INSERT INTO customers (first_name, last_name, phone, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	updateCustomerSQL = `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            phone = $3,
            notes = $4
        WHERE id = $5`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) FindAll(ctx context.Context) (customers []*customer.Customer, err error) {
	defer monitoring.ObserveQuery("customers_find_all", time.Now(), &err)

	r.logger.DebugContext(ctx, "Attempting to find all customers")

	customers, err = r.queryCustomers(ctx, findAllCustomersSQL)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (cust *customer.Customer, err error) {
	defer monitoring.ObserveQuery("customers_find_by_id", time.Now(), &err)

	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Attempting to find customer by ID")

	cust = &customer.Customer{}
	err = r.db.QueryRow(ctx, findCustomerByIDSQL, customerID).Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Phone,
		&cust.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logCtx.WarnContext(ctx, "Customer not found")
			return nil, apperrors.NewNotFoundError("customer", customerID)
		}
		logCtx.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Customer found successfully")
	return cust, nil
}

func (r *CustomerRepository) FindByName(ctx context.Context, firstName string, lastName *string) (customers []*customer.Customer, err error) {
	defer monitoring.ObserveQuery("customers_find_by_name", time.Now(), &err)

	if lastName == nil {
		r.logger.DebugContext(ctx, "Searching customers by either name", slog.String("name", firstName))
		customers, err = r.queryCustomers(ctx, findCustomersByEitherNameSQL, firstName)
	} else {
		r.logger.DebugContext(ctx, "Searching customers by full name", slog.String("firstName", firstName), slog.String("lastName", *lastName))
		customers, err = r.queryCustomers(ctx, findCustomersByFullNameSQL, firstName, *lastName)
	}
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Finished searching customers by name", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) MostReservations(ctx context.Context) (customers []*customer.Customer, err error) {
	defer monitoring.ObserveQuery("customers_most_reservations", time.Now(), &err)

	r.logger.DebugContext(ctx, "Attempting to rank customers by reservation count")

	rows, err := r.db.Query(ctx, mostReservationsSQL, customer.MostReservationsLimit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query reservation ranking", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query reservation ranking: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0, customer.MostReservationsLimit)
	for rows.Next() {
		var cust customer.Customer
		if err = rows.Scan(
			&cust.ID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Phone,
			&cust.Notes,
			&cust.NumReservations,
		); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan ranked customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan ranked customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating ranked customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating ranked customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished ranking customers", slog.Int("count", len(customers)))
	return customers, nil
}

// Save inserts a customer without an id and writes the generated id back,
// otherwise it overwrites every column of the existing row.
func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.IsNew() {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer monitoring.ObserveQuery("customers_insert", time.Now(), &err)

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", cust.FullName()))

	err = r.db.QueryRow(ctx, insertCustomerSQL,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
	).Scan(&cust.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer monitoring.ObserveQuery("customers_update", time.Now(), &err)

	logCtx := r.logger.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	cmdTag, err := r.db.Exec(ctx, updateCustomerSQL,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
		cust.ID,
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return nil
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.ID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Phone,
			&cust.Notes,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	return customers, nil
}
