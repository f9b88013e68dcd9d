package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// RestaurantSvcFacade exposes tenant management operations.
type RestaurantSvcFacade interface {
	CreateRestaurant(ctx context.Context, req dto.CreateRestaurantRequest, creatorUserID string) (*domain.Restaurant, error)

	GetRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)

	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

// CustomerSvcFacade exposes customer management operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, restaurantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	GetCustomerByID(ctx context.Context, restaurantID, customerID string) (*domain.Customer, error)

	ListCustomers(ctx context.Context, restaurantID string) ([]domain.Customer, error)
}
