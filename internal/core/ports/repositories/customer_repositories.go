package repositories

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	ListCustomersByRestaurant(ctx context.Context, restaurantID string) ([]domain.Customer, error)
}
