package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// restaurantService manages the tenant units.
type restaurantService struct {
	BaseService
	restaurantRepo portsrepo.RestaurantRepositoryFacade
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(restaurantRepo portsrepo.RestaurantRepositoryFacade, users portssvc.UserReaderSvc) portssvc.RestaurantSvcFacade {
	return &restaurantService{
		BaseService:    BaseService{Users: users},
		restaurantRepo: restaurantRepo,
	}
}

var _ portssvc.RestaurantSvcFacade = (*restaurantService)(nil)

func (s *restaurantService) CreateRestaurant(ctx context.Context, req dto.CreateRestaurantRequest, creatorUserID string) (*domain.Restaurant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: restaurant name is required", apperrors.ErrValidation)
	}
	if req.OpeningCashBalance.IsNegative() || req.OpeningOrangeMoneyBalance.IsNegative() || req.OpeningCardBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balances cannot be negative", apperrors.ErrValidation)
	}

	mode := domain.DeductImmediate
	if req.StockDeductionMode != "" {
		mode = domain.StockDeductionMode(req.StockDeductionMode)
		if mode != domain.DeductImmediate && mode != domain.DeductDeferred {
			return nil, fmt.Errorf("%w: unknown stock deduction mode '%s'", apperrors.ErrValidation, req.StockDeductionMode)
		}
	}

	now := time.Now()
	restaurant := domain.Restaurant{
		RestaurantID:              uuid.NewString(),
		Name:                      name,
		Address:                   req.Address,
		OpeningCashBalance:        req.OpeningCashBalance,
		OpeningOrangeMoneyBalance: req.OpeningOrangeMoneyBalance,
		OpeningCardBalance:        req.OpeningCardBalance,
		StockDeductionMode:        mode,
		IsActive:                  true,
		AuditFields:               s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.restaurantRepo.SaveRestaurant(ctx, restaurant); err != nil {
		s.LogError(ctx, err, "Failed to save restaurant")
		return nil, fmt.Errorf("failed to save restaurant: %w", err)
	}

	s.LogInfo(ctx, "Restaurant created",
		slog.String("restaurant_id", restaurant.RestaurantID),
		slog.String("name", restaurant.Name))
	return &restaurant, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	return s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
}

func (s *restaurantService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := s.restaurantRepo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}
