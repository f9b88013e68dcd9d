package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customers.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `
	customer_id, restaurant_id, name, phone, credit_limit, is_active,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.CustomerID,
		&customer.RestaurantID,
		&customer.Name,
		&customer.Phone,
		&customer.CreditLimit,
		&customer.IsActive,
		&customer.CreatedAt,
		&customer.CreatedBy,
		&customer.CreatedByName,
		&customer.LastUpdatedAt,
		&customer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &customer, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.RestaurantID,
		customer.Name,
		customer.Phone,
		customer.CreditLimit,
		customer.IsActive,
		customer.CreatedAt,
		customer.CreatedBy,
		customer.CreatedByName,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	return scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
}

func (r *PgxCustomerRepository) ListCustomersByRestaurant(ctx context.Context, restaurantID string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE restaurant_id = $1 ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}
