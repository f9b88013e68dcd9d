package repositories

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// RestaurantRepositoryFacade defines persistence operations for restaurants.
type RestaurantRepositoryFacade interface {
	SaveRestaurant(ctx context.Context, restaurant domain.Restaurant) error

	FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)

	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}
